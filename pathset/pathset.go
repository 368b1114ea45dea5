package pathset

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mazepath/dijkstra"
	"github.com/katalvlaran/mazepath/maze"
)

// queueItem is a worklist entry: a state and its hops from the frontier.
type queueItem struct {
	state maze.State
	depth int
}

// walker holds the mutable state of one backward traversal.
type walker struct {
	res     *dijkstra.Result
	opts    Options
	queue   []queueItem
	visited map[maze.State]bool
	set     *Set
}

// Positions returns the set of cells covered by at least one path from the
// start whose cost equals the global minimum.
// Returns ErrNilResult, ErrNoPredecessors, ErrOptionViolation for bad input,
// ErrUnreachable if the goal was never reached, ErrInternalInconsistency if
// the start position is not recovered, or any OnVisit / context error.
//
// Time:   O(S + P), P = total predecessor entries.
// Memory: O(S) for the visited set and worklist.
func Positions(res *dijkstra.Result, opts ...Option) (*Set, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if res == nil {
		return nil, ErrNilResult
	}
	if !res.HasPredecessors() {
		return nil, ErrNoPredecessors
	}

	frontier, err := res.GoalStates()
	if errors.Is(err, dijkstra.ErrUnreachable) {
		return nil, ErrUnreachable
	}
	if err != nil {
		return nil, err
	}
	cost, _ := res.MinCost()

	w := &walker{
		res:     res,
		opts:    o,
		visited: make(map[maze.State]bool),
		set: &Set{
			Cost:      cost,
			Frontier:  frontier,
			positions: make(map[maze.Position]struct{}),
		},
	}
	for _, s := range frontier {
		w.enqueue(s, 0)
	}
	if err := w.loop(); err != nil {
		return nil, err
	}

	if !w.set.Contains(res.Start.Pos) {
		return nil, fmt.Errorf("%w: start %s not reached from %d goal states after visiting %d states",
			ErrInternalInconsistency, res.Start.Pos, len(frontier), w.set.States)
	}

	return w.set, nil
}

// enqueue marks s visited and appends it to the worklist.
func (w *walker) enqueue(s maze.State, depth int) {
	w.visited[s] = true
	w.queue = append(w.queue, queueItem{state: s, depth: depth})
}

// loop processes the worklist until empty, error, or cancellation.
func (w *walker) loop() error {
	for qi := 0; qi < len(w.queue); qi++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[qi]
		if err := w.opts.OnVisit(item.state, item.depth); err != nil {
			return fmt.Errorf("pathset: OnVisit error at %s: %w", item.state, err)
		}
		w.set.positions[item.state.Pos] = struct{}{}
		w.set.States++

		for _, p := range w.res.Predecessors(item.state) {
			if !w.visited[p] {
				w.enqueue(p, item.depth+1)
			}
		}
	}

	return nil
}
