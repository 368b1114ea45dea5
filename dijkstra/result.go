package dijkstra

import (
	"github.com/katalvlaran/mazepath/maze"
)

// Result holds the tables produced by one Dijkstra run. The maps are owned
// by the caller once returned; the solver keeps no reference to them.
type Result struct {
	// Start is the state the search began from.
	Start maze.State
	// Goal is the target cell; all four facings there count as arrival.
	Goal maze.Position
	// Dist maps every maze state to its minimum distance, Infinity if unreached.
	Dist map[maze.State]int64
	// Prev maps a state to every predecessor on a minimum-cost route into it.
	// Nil when the run used WithoutPredecessors.
	Prev map[maze.State][]maze.State
	// Stats counts the work done by the run.
	Stats Stats
}

// Distance returns the minimum distance of s and whether it is finite.
func (r *Result) Distance(s maze.State) (int64, bool) {
	d, ok := r.Dist[s]
	if !ok || d == Infinity {
		return Infinity, false
	}

	return d, true
}

// Predecessors returns the predecessor set of s. The start state and
// unreached states have none.
func (r *Result) Predecessors(s maze.State) []maze.State {
	return r.Prev[s]
}

// HasPredecessors reports whether the run recorded predecessor sets.
func (r *Result) HasPredecessors() bool {
	return r.Prev != nil
}

// MinCost returns the minimum distance over the four goal facings.
// Returns ErrUnreachable if all four are infinite.
func (r *Result) MinCost() (int64, error) {
	best := Infinity
	for _, d := range maze.Directions() {
		if dist, ok := r.Distance(maze.State{Pos: r.Goal, Dir: d}); ok && dist < best {
			best = dist
		}
	}
	if best == Infinity {
		return 0, ErrUnreachable
	}

	return best, nil
}

// GoalStates returns the frontier: every goal state whose distance equals
// MinCost, in North, East, South, West order.
// Returns ErrUnreachable if the goal was not reached.
func (r *Result) GoalStates() ([]maze.State, error) {
	best, err := r.MinCost()
	if err != nil {
		return nil, err
	}

	frontier := make([]maze.State, 0, 4)
	for _, d := range maze.Directions() {
		s := maze.State{Pos: r.Goal, Dir: d}
		if dist, ok := r.Distance(s); ok && dist == best {
			frontier = append(frontier, s)
		}
	}

	return frontier, nil
}
