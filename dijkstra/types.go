// Package dijkstra defines configuration options, run statistics and
// sentinel errors for the directional maze solver.
//
// Options:
//
//	– Costs:          step and turn weights (default 1 and 1000), each in (0, maze.MaxCost].
//	– MaxDistance:    optional cap on distances to explore; states beyond stay at +∞.
//	– Ctx:            optional context, checked once per heap pop.
//	– Predecessors:   whether to record predecessor sets (default true).
//
// Errors (sentinel):
//
//	– ErrNilMaze        if the provided maze pointer is nil.
//	– ErrStartNotFound  if the start state is not an open cell of the maze.
//	– ErrUnreachable    if no goal state has a finite distance.
//	– ErrBadMaxDistance if MaxDistance < 0.
//	– ErrBadCosts       if a step or turn weight is not in (0, maze.MaxCost].
//	– ErrOptionViolation wraps both option errors above.
//
// Example usage:
//
//	res, err := dijkstra.Dijkstra(m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cost, err := res.MinCost()
//	if errors.Is(err, dijkstra.ErrUnreachable) {
//	    fmt.Println("no route")
//	}
package dijkstra

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mazepath/maze"
)

// Infinity is the distance of a state not (yet) reached from the start.
const Infinity int64 = math.MaxInt64

// Sentinel errors returned by the solver.
var (
	// ErrNilMaze indicates that a nil *maze.Maze was passed to Dijkstra.
	ErrNilMaze = errors.New("dijkstra: maze is nil")

	// ErrStartNotFound indicates that the maze's start state is not one of its states.
	ErrStartNotFound = errors.New("dijkstra: start state not in maze")

	// ErrUnreachable indicates that every goal state has infinite distance.
	// It is an expected outcome, not a failure of the solver.
	ErrUnreachable = errors.New("dijkstra: goal unreachable from start")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = fmt.Errorf("%w: MaxDistance must be non-negative", ErrOptionViolation)

	// ErrBadCosts indicates a non-positive step or turn weight.
	ErrBadCosts = fmt.Errorf("%w: step and turn costs must be in (0, maze.MaxCost]", ErrOptionViolation)
)

// Options configures the behavior of the solver.
type Options struct {
	Ctx          context.Context // Checked once per pop; nil means no cancellation
	Costs        maze.Costs      // Edge weights
	MaxDistance  int64           // Maximum distance to explore
	Predecessors bool            // Whether to record predecessor sets

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Dijkstra.
// An invalid Option is recorded and surfaced as an error when Dijkstra runs.
type Option func(*Options)

// DefaultOptions returns an Options struct initialized with:
//   - Ctx:          nil (no cancellation).
//   - Costs:        maze.DefaultCosts() (step 1, turn 1000).
//   - MaxDistance:  Infinity (explore everything reachable).
//   - Predecessors: true.
func DefaultOptions() Options {
	return Options{
		Costs:        maze.DefaultCosts(),
		MaxDistance:  Infinity,
		Predecessors: true,
	}
}

// WithCosts overrides the step and turn weights. Both must lie in
// (0, maze.MaxCost].
func WithCosts(c maze.Costs) Option {
	return func(o *Options) {
		if c.Step <= 0 || c.Turn <= 0 || c.Step > maze.MaxCost || c.Turn > maze.MaxCost {
			o.err = fmt.Errorf("%w: step=%d turn=%d", ErrBadCosts, c.Step, c.Turn)
			return
		}
		o.Costs = c
	}
}

// WithMaxDistance sets a maximum distance threshold. States whose shortest
// distance would exceed it are left at Infinity, so a goal beyond the cap
// reads as unreachable. Zero is a valid cap (only the start is settled).
func WithMaxDistance(max int64) Option {
	return func(o *Options) {
		if max < 0 {
			o.err = fmt.Errorf("%w: got %d", ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// WithContext sets a context checked before each heap pop. When it is done,
// Dijkstra returns the context error.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithoutPredecessors skips predecessor bookkeeping for cost-only queries.
// Result.Prev is nil and optimal positions cannot be extracted.
func WithoutPredecessors() Option {
	return func(o *Options) {
		o.Predecessors = false
	}
}

// Stats counts the work done by one run.
type Stats struct {
	Pushes      int `json:"pushes"`      // entries pushed onto the heap
	Pops        int `json:"pops"`        // entries popped, stale ones included
	StalePops   int `json:"stale_pops"`  // popped entries discarded as stale
	Finalized   int `json:"finalized"`   // states whose distance became final
	Relaxations int `json:"relaxations"` // edges examined from finalized states
	Ties        int `json:"ties"`        // predecessors appended on equal distance
}
