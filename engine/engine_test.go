package engine

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mazepath/config"
	"github.com/katalvlaran/mazepath/dijkstra"
	"github.com/katalvlaran/mazepath/internal/fixtures"
	"github.com/katalvlaran/mazepath/maze"
)

// newEngine builds an Engine from the default solver config after mutate.
func newEngine(t *testing.T, mutate func(*config.Solver), opts ...Option) *Engine {
	t.Helper()
	cfg := config.Default().Solver
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg, opts...)
	require.NoError(t, err)

	return e
}

func boolPtr(b bool) *bool { return &b }

func TestNew_RejectsBadSolverConfig(t *testing.T) {
	cfg := config.Default().Solver
	cfg.TurnCost = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, dijkstra.ErrBadCosts)

	cfg = config.Default().Solver
	cfg.TurnCost = 5_000_000_000_000_000_000
	_, err = New(cfg)
	assert.ErrorIs(t, err, dijkstra.ErrBadCosts)

	cfg = config.Default().Solver
	cfg.MaxDistance = -1
	_, err = New(cfg)
	assert.ErrorIs(t, err, dijkstra.ErrBadMaxDistance)
}

func TestSolve_Fixtures(t *testing.T) {
	e := newEngine(t, nil)
	cases := []struct {
		name  string
		text  string
		cost  int64
		tiles int
	}{
		{"corridors", fixtures.Corridors, 7036, 45},
		{"junction", fixtures.Junction, 11048, 64},
		{"elbow", fixtures.Elbow, 1006, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := e.Solve(context.Background(), Query{Name: tc.name, Text: tc.text})
			require.NoError(t, err)
			assert.True(t, rep.Reachable)
			assert.Equal(t, tc.cost, rep.Cost)
			assert.Equal(t, tc.tiles, rep.Tiles)
			assert.Len(t, rep.Positions, tc.tiles)
			assert.Len(t, rep.Marks(), tc.tiles)
			assert.NotEmpty(t, rep.ID)
			assert.Equal(t, tc.name, rep.Name)
			assert.False(t, rep.Prechecked)
		})
	}
}

func TestSolve_CostOnly(t *testing.T) {
	e := newEngine(t, nil)
	rep, err := e.Solve(context.Background(), Query{Text: fixtures.Junction, Tiles: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(11048), rep.Cost)
	assert.Zero(t, rep.Tiles)
	assert.Nil(t, rep.Positions)
	assert.Nil(t, rep.Marks())
	assert.Zero(t, rep.Stats.Ties, "no predecessor bookkeeping")
}

func TestSolve_ConfigDisablesTiles(t *testing.T) {
	e := newEngine(t, func(c *config.Solver) { c.ExtractTiles = false })
	rep, err := e.Solve(context.Background(), Query{Text: fixtures.Corridors})
	require.NoError(t, err)
	assert.Zero(t, rep.Tiles)

	rep, err = e.Solve(context.Background(), Query{Text: fixtures.Corridors, Tiles: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 45, rep.Tiles, "query override wins")
}

func TestSolve_Malformed(t *testing.T) {
	e := newEngine(t, nil)
	before := testutil.ToFloat64(solvesTotal.WithLabelValues(OutcomeMalformed))

	rep, err := e.Solve(context.Background(), Query{Text: "#S.#\n#.E"})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, maze.ErrMalformedMaze)
	assert.Equal(t, before+1, testutil.ToFloat64(solvesTotal.WithLabelValues(OutcomeMalformed)))
}

func TestSolve_Unreachable(t *testing.T) {
	t.Run("Precheck", func(t *testing.T) {
		e := newEngine(t, nil)
		before := testutil.ToFloat64(solvesTotal.WithLabelValues(OutcomeUnreachable))

		rep, err := e.Solve(context.Background(), Query{Text: fixtures.Walled})
		require.NoError(t, err)
		assert.False(t, rep.Reachable)
		assert.True(t, rep.Prechecked)
		assert.Zero(t, rep.Stats.Finalized, "solver skipped")
		assert.Equal(t, before+1, testutil.ToFloat64(solvesTotal.WithLabelValues(OutcomeUnreachable)))
	})

	t.Run("Solver", func(t *testing.T) {
		e := newEngine(t, func(c *config.Solver) { c.Precheck = false })
		rep, err := e.Solve(context.Background(), Query{Text: fixtures.Walled})
		require.NoError(t, err)
		assert.False(t, rep.Reachable)
		assert.False(t, rep.Prechecked)
		assert.Positive(t, rep.Stats.Finalized)
		assert.Zero(t, rep.Tiles)
		assert.Nil(t, rep.Marks())
	})

	t.Run("DistanceCap", func(t *testing.T) {
		e := newEngine(t, func(c *config.Solver) { c.MaxDistance = 7035 })
		rep, err := e.Solve(context.Background(), Query{Text: fixtures.Corridors})
		require.NoError(t, err)
		assert.False(t, rep.Reachable, "truncation reads as unreachable")
	})
}

func TestSolve_CustomCosts(t *testing.T) {
	e := newEngine(t, func(c *config.Solver) { c.TurnCost = 1 })
	rep, err := e.Solve(context.Background(), Query{Text: fixtures.Elbow})
	require.NoError(t, err)
	assert.Equal(t, int64(7), rep.Cost)
}

func TestSolve_Canceled(t *testing.T) {
	e := newEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Solve(ctx, Query{Text: fixtures.Corridors})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveMaze(t *testing.T) {
	e := newEngine(t, nil)
	m, err := maze.Parse(fixtures.Backwards)
	require.NoError(t, err)

	rep, err := e.SolveMaze(context.Background(), "backwards", m, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2002), rep.Cost)
	assert.Equal(t, 3, rep.Tiles)

	_, err = e.SolveMaze(context.Background(), "nil", nil, true)
	assert.ErrorIs(t, err, dijkstra.ErrNilMaze)
}

func TestSolve_LogsQueryID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	e := newEngine(t, nil, WithLogger(logger))

	rep, err := e.Solve(context.Background(), Query{Name: "corridors", Text: fixtures.Corridors})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "maze solved")
	assert.Contains(t, buf.String(), "query_id="+rep.ID)
	assert.Contains(t, buf.String(), "cost=7036")
}

func TestSolveAll(t *testing.T) {
	e := newEngine(t, nil)
	queries := []Query{
		{Name: "corridors", Text: fixtures.Corridors},
		{Name: "broken", Text: "S?E"},
		{Name: "walled", Text: fixtures.Walled},
		{Name: "junction", Text: fixtures.Junction},
	}

	out, err := e.SolveAll(context.Background(), queries, 2)
	require.NoError(t, err)
	require.Len(t, out, len(queries))

	for i, o := range out {
		assert.Equal(t, queries[i].Name, o.Query.Name, "outcomes keep query order")
	}
	assert.Equal(t, int64(7036), out[0].Report.Cost)
	assert.ErrorIs(t, out[1].Err, maze.ErrMalformedMaze)
	assert.False(t, out[2].Report.Reachable)
	assert.Equal(t, 64, out[3].Report.Tiles)
}

func TestSolveAll_Canceled(t *testing.T) {
	e := newEngine(t, nil)
	queries := []Query{
		{Name: "corridors", Text: fixtures.Corridors},
		{Name: "junction", Text: fixtures.Junction},
		{Name: "elbow", Text: fixtures.Elbow},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := e.SolveAll(ctx, queries, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, len(queries))
	for i, o := range out {
		assert.Equal(t, queries[i].Name, o.Query.Name)
		assert.Nil(t, o.Report)
		assert.ErrorIs(t, o.Err, context.Canceled, "every slot carries exactly one of Report or Err")
	}
}
