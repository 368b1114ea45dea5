// Package dijkstra implements Dijkstra's shortest-path algorithm over the
// state space of a maze, where a state is a cell plus a facing.
//
// Besides the minimum distance of every state, the solver records for each
// state the complete set of predecessor states lying on some minimum-cost
// path into it. The pathset package walks that relation backward to recover
// every optimal path.
//
// Complexity:
//
//   - Time:  O(S log S), S = 4 × open cells; each state has at most 3 edges.
//   - Space: O(S) for distance and predecessor maps and the heap.
//
// Notes on implementation choices:
//
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the heap
//     and ignoring stale entries when popped.
//   - A popped entry is stale when its distance exceeds the state's current
//     best, or when the state is already finalized. This single check decides
//     finalization, and predecessor appends are gated on it too.
//   - Equal-distance relaxations append to the predecessor set without a new
//     heap entry, since the target's distance is unchanged.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/mazepath/maze"
)

// Dijkstra computes the minimum distance from m.Start to every state of m,
// together with the predecessor sets of all tied minimum-cost routes.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrBadCosts, ErrBadMaxDistance).
//  2. m must be non-nil (ErrNilMaze).
//  3. m.Start must be a state of m (ErrStartNotFound).
//
// A goal that cannot be reached is not an error here; Result.MinCost reports
// ErrUnreachable. A done context returns its error wrapped.
//
// Complexity:
//
//   - Time:  O(S log S)
//   - Space: O(S)
func Dijkstra(m *maze.Maze, opts ...Option) (*Result, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 2) Validate the maze
	if m == nil {
		return nil, ErrNilMaze
	}
	if !m.Contains(m.Start) {
		return nil, fmt.Errorf("%w: %s", ErrStartNotFound, m.Start)
	}

	// 3) Prepare the per-run tables. They belong to this call only.
	S := m.NumStates()
	r := &runner{
		m:         m,
		options:   cfg,
		dist:      make(map[maze.State]int64, S),
		finalized: make(map[maze.State]bool, S),
		pq:        make(statePQ, 0, S),
		edges:     make([]maze.Edge, 0, 3),
	}
	if cfg.Predecessors {
		r.prev = make(map[maze.State][]maze.State, S)
	}

	// 4) Initialize and run the main loop.
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{
		Start: m.Start,
		Goal:  m.Goal,
		Dist:  r.dist,
		Prev:  r.prev,
		Stats: r.stats,
	}, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	m         *maze.Maze                  // The input maze; read-only.
	options   Options                     // Configuration options.
	dist      map[maze.State]int64        // State → current best distance from Start.
	prev      map[maze.State][]maze.State // State → predecessors on minimum-cost routes.
	finalized map[maze.State]bool         // Tracks whether a state's distance is final.
	pq        statePQ                     // Min-heap of *stateItem.
	edges     []maze.Edge                 // Reused neighbor buffer.
	stats     Stats
}

// init sets dist[s] = +∞ for every state, dist[Start] = 0, and pushes Start.
func (r *runner) init() {
	for _, s := range r.m.States() {
		r.dist[s] = Infinity
	}
	r.dist[r.m.Start] = 0

	heap.Init(&r.pq)
	r.push(r.m.Start, 0)
}

// process repeatedly extracts the state with the minimum distance and
// relaxes its outgoing edges, until the heap is empty or the smallest
// queued distance exceeds MaxDistance.
func (r *runner) process() error {
	ctx := r.options.Ctx
	for r.pq.Len() > 0 {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("dijkstra: interrupted after %d pops: %w", r.stats.Pops, err)
			}
		}

		// 1) Pop the smallest-distance item.
		item := heap.Pop(&r.pq).(*stateItem)
		r.stats.Pops++
		u, d := item.state, item.dist

		// 2) Stale entry: a smaller distance was already recorded for u,
		//    or u was finalized by an earlier entry.
		if d > r.dist[u] || r.finalized[u] {
			r.stats.StalePops++
			continue
		}

		// 3) Past the cap: every remaining entry is at least as far.
		if d > r.options.MaxDistance {
			break
		}

		// 4) d is final for u.
		r.finalized[u] = true
		r.stats.Finalized++

		r.relax(u, d)
	}

	return nil
}

// relax proposes d + w for every edge u → v.
//
//   - Strictly better: replace dist[v] and prev[v] = {u}, push v.
//   - Equal and v not finalized: append u to prev[v].
//
// Assumes u is finalized with distance d.
func (r *runner) relax(u maze.State, d int64) {
	r.edges = r.m.AppendNeighbors(r.edges[:0], u, r.options.Costs)
	for _, e := range r.edges {
		r.stats.Relaxations++
		v := e.To
		if r.finalized[v] {
			continue
		}

		// d <= MaxDistance here, so the subtraction cannot overflow and
		// cand never wraps past the cap.
		if e.Weight > r.options.MaxDistance-d {
			continue
		}
		cand := d + e.Weight
		if cand == Infinity {
			continue
		}

		switch best := r.dist[v]; {
		case cand < best:
			r.dist[v] = cand
			if r.prev != nil {
				r.prev[v] = append(r.prev[v][:0], u)
			}
			r.push(v, cand)
		case cand == best:
			if r.prev != nil {
				r.prev[v] = append(r.prev[v], u)
				r.stats.Ties++
			}
		}
	}
}

// push adds a heap entry for s at distance d.
func (r *runner) push(s maze.State, d int64) {
	heap.Push(&r.pq, &stateItem{state: s, dist: d})
	r.stats.Pushes++
}

// stateItem is a heap entry: a state and the distance it was queued with.
type stateItem struct {
	state maze.State
	dist  int64
}

// statePQ is a min-heap of *stateItem ordered by ascending dist.
// Outdated entries stay in the heap and are skipped when popped.
type statePQ []*stateItem

// Len returns the number of items in the heap.
func (pq statePQ) Len() int { return len(pq) }

// Less orders by smaller dist first. Ties are broken arbitrarily.
func (pq statePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap; x must be a *stateItem.
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*stateItem)) }

// Pop removes and returns the last element of the underlying slice.
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
