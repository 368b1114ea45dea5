package pathset_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mazepath/dijkstra"
	"github.com/katalvlaran/mazepath/internal/fixtures"
	"github.com/katalvlaran/mazepath/maze"
	"github.com/katalvlaran/mazepath/pathset"
)

// PositionsSuite exercises extraction over solved fixtures.
type PositionsSuite struct {
	suite.Suite
}

// solve parses text and runs the solver with predecessor sets.
func (s *PositionsSuite) solve(text string) (*maze.Maze, *dijkstra.Result) {
	m, err := maze.Parse(text)
	require.NoError(s.T(), err)
	res, err := dijkstra.Dijkstra(m)
	require.NoError(s.T(), err)

	return m, res
}

// TestCounts checks the number of optimal positions on every fixture.
func (s *PositionsSuite) TestCounts() {
	cases := []struct {
		name string
		text string
		cost int64
		want int
	}{
		{"Adjacent", fixtures.Adjacent, 1, 2},
		{"Straight", fixtures.Straight, 5, 6},
		{"Elbow", fixtures.Elbow, 1006, 7},
		{"Backwards", fixtures.Backwards, 2002, 3},
		{"Pillar", fixtures.Pillar, 1004, 5},
		{"Corridors", fixtures.Corridors, 7036, 45},
		{"Junction", fixtures.Junction, 11048, 64},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			m, res := s.solve(tc.text)
			set, err := pathset.Positions(res)
			require.NoError(s.T(), err)

			require.Equal(s.T(), tc.want, set.Len())
			require.Equal(s.T(), tc.cost, set.Cost)
			require.True(s.T(), set.Contains(m.Start.Pos), "start missing")
			require.True(s.T(), set.Contains(m.Goal), "goal missing")
			require.LessOrEqual(s.T(), set.Len(), m.OpenCells())
			for _, p := range set.Sorted() {
				require.True(s.T(), m.Open(p), "wall %s in optimal set", p)
			}
		})
	}
}

// TestElbowCells pins the exact cells of the single optimal route.
func (s *PositionsSuite) TestElbowCells() {
	_, res := s.solve(fixtures.Elbow)
	set, err := pathset.Positions(res)
	require.NoError(s.T(), err)

	want := []maze.Position{
		{X: 5, Y: 1},
		{X: 5, Y: 2},
		{X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 3},
	}
	require.Equal(s.T(), want, set.Sorted())
	require.Equal(s.T(), []maze.State{{Pos: maze.Position{X: 5, Y: 1}, Dir: maze.North}}, set.Frontier)
}

// TestIdempotent extracts twice from fresh solves and compares.
func (s *PositionsSuite) TestIdempotent() {
	_, a := s.solve(fixtures.Junction)
	_, b := s.solve(fixtures.Junction)
	sa, err := pathset.Positions(a)
	require.NoError(s.T(), err)
	sb, err := pathset.Positions(b)
	require.NoError(s.T(), err)

	require.Equal(s.T(), sa.Sorted(), sb.Sorted())
	require.Equal(s.T(), sa.States, sb.States)
}

// TestMarksIsACopy ensures callers cannot mutate the set through Marks.
func (s *PositionsSuite) TestMarksIsACopy() {
	_, res := s.solve(fixtures.Straight)
	set, err := pathset.Positions(res)
	require.NoError(s.T(), err)

	marks := set.Marks()
	require.Len(s.T(), marks, set.Len())
	marks[maze.Position{X: 99, Y: 99}] = struct{}{}
	require.False(s.T(), set.Contains(maze.Position{X: 99, Y: 99}))
}

// TestOnVisit sees every visited state exactly once, frontier at depth 0.
func (s *PositionsSuite) TestOnVisit() {
	_, res := s.solve(fixtures.Corridors)
	seen := make(map[maze.State]int)
	set, err := pathset.Positions(res, pathset.WithOnVisit(func(st maze.State, depth int) error {
		seen[st]++
		if depth == 0 {
			require.Equal(s.T(), res.Goal, st.Pos)
		}
		return nil
	}))
	require.NoError(s.T(), err)
	require.Len(s.T(), seen, set.States)
	for st, n := range seen {
		require.Equal(s.T(), 1, n, "state %s visited %d times", st, n)
	}
}

// TestOnVisitError aborts extraction with the hook's error.
func (s *PositionsSuite) TestOnVisitError() {
	_, res := s.solve(fixtures.Corridors)
	stop := errors.New("stop")
	_, err := pathset.Positions(res, pathset.WithOnVisit(func(maze.State, int) error { return stop }))
	require.ErrorIs(s.T(), err, stop)
}

// TestContextCanceled stops before visiting anything.
func (s *PositionsSuite) TestContextCanceled() {
	_, res := s.solve(fixtures.Corridors)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pathset.Positions(res, pathset.WithContext(ctx))
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestPositionsSuite(t *testing.T) {
	suite.Run(t, new(PositionsSuite))
}

//----------------------------------------------------------------------------//
// Error paths
//----------------------------------------------------------------------------//

func TestPositions_Unreachable(t *testing.T) {
	m, err := maze.Parse(fixtures.Walled)
	require.NoError(t, err)
	res, err := dijkstra.Dijkstra(m)
	require.NoError(t, err)

	set, err := pathset.Positions(res)
	require.Nil(t, set, "no empty set on an unreachable goal")
	require.ErrorIs(t, err, pathset.ErrUnreachable)
	require.ErrorIs(t, err, dijkstra.ErrUnreachable)
}

func TestPositions_BadInput(t *testing.T) {
	_, err := pathset.Positions(nil)
	require.ErrorIs(t, err, pathset.ErrNilResult)

	m, err := maze.Parse(fixtures.Straight)
	require.NoError(t, err)
	res, err := dijkstra.Dijkstra(m, dijkstra.WithoutPredecessors())
	require.NoError(t, err)
	_, err = pathset.Positions(res)
	require.ErrorIs(t, err, pathset.ErrNoPredecessors)

	//nolint:staticcheck // a nil context is the invalid input under test
	_, err = pathset.Positions(res, pathset.WithContext(nil))
	require.ErrorIs(t, err, pathset.ErrOptionViolation)
}

// TestPositions_InternalInconsistency feeds a hand-built table whose goal
// has a finite distance but no route back to the start.
func TestPositions_InternalInconsistency(t *testing.T) {
	start := maze.State{Pos: maze.Position{X: 0, Y: 0}, Dir: maze.East}
	goal := maze.Position{X: 2, Y: 0}
	mid := maze.State{Pos: maze.Position{X: 1, Y: 0}, Dir: maze.East}
	arrive := maze.State{Pos: goal, Dir: maze.East}

	res := &dijkstra.Result{
		Start: start,
		Goal:  goal,
		Dist: map[maze.State]int64{
			start:  0,
			mid:    1,
			arrive: 2,
		},
		// mid lost its predecessor.
		Prev: map[maze.State][]maze.State{
			arrive: {mid},
		},
	}

	_, err := pathset.Positions(res)
	require.ErrorIs(t, err, pathset.ErrInternalInconsistency)
}
