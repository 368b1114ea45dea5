// Package pathset provides options, the result Set, and sentinel errors for
// optimal-path extraction.
package pathset

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/mazepath/dijkstra"
	"github.com/katalvlaran/mazepath/maze"
)

// Sentinel errors for extraction.
var (
	// ErrNilResult is returned if a nil *dijkstra.Result is passed.
	ErrNilResult = errors.New("pathset: result is nil")

	// ErrNoPredecessors is returned when the result carries no predecessor sets.
	ErrNoPredecessors = errors.New("pathset: result has no predecessor sets")

	// ErrUnreachable is returned when no goal state has a finite distance.
	ErrUnreachable = fmt.Errorf("pathset: no optimal path: %w", dijkstra.ErrUnreachable)

	// ErrInternalInconsistency is returned when the start position is missing
	// from the extracted set. It signals a solver bug.
	ErrInternalInconsistency = errors.New("pathset: internal inconsistency")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pathset: invalid option supplied")
)

// Option configures extraction via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks for extraction.
type Options struct {
	// Ctx allows cancellation; checked once per dequeued state.
	Ctx context.Context

	// OnVisit is called for every state taken off the worklist, with its
	// number of backward hops from the frontier. Returning an error aborts
	// extraction.
	OnVisit func(s maze.State, depth int) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with context.Background and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(maze.State, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithOnVisit registers a callback to run on every visited state.
func WithOnVisit(fn func(s maze.State, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Set is the set of positions on at least one optimal path.
type Set struct {
	// Cost is the minimum cost the paths achieve.
	Cost int64
	// Frontier lists the goal states tied at Cost.
	Frontier []maze.State
	// States is the number of states visited by the backward walk.
	States    int
	positions map[maze.Position]struct{}
}

// Len returns the number of distinct positions.
func (s *Set) Len() int {
	return len(s.positions)
}

// Contains reports whether p lies on an optimal path.
func (s *Set) Contains(p maze.Position) bool {
	_, ok := s.positions[p]

	return ok
}

// Sorted returns the positions in row-major order.
func (s *Set) Sorted() []maze.Position {
	out := slices.Collect(maps.Keys(s.positions))
	slices.SortFunc(out, func(a, b maze.Position) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}

		return cmp.Compare(a.X, b.X)
	})

	return out
}

// Marks returns a copy of the positions keyed for maze.Render.
func (s *Set) Marks() map[maze.Position]struct{} {
	return maps.Clone(s.positions)
}
