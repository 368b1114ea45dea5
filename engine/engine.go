// Package engine runs complete maze queries: parse the text, solve for the
// minimum cost, and optionally extract every cell on an optimal path.
//
// Each query owns its maze and tables, so one Engine serves any number of
// concurrent queries. Queries are traced with OpenTelemetry, counted in
// Prometheus metrics, and logged through slog with a per-query ID.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mazepath/config"
	"github.com/katalvlaran/mazepath/dijkstra"
	"github.com/katalvlaran/mazepath/logging"
	"github.com/katalvlaran/mazepath/maze"
	"github.com/katalvlaran/mazepath/pathset"
)

var tracer = otel.Tracer("mazepath.engine")

// Engine answers maze queries with a fixed solver configuration.
type Engine struct {
	cfg    config.Solver
	costs  maze.Costs
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Engine for cfg. Costs must lie in (0, maze.MaxCost] and
// MaxDistance must be non-negative.
func New(cfg config.Solver, opts ...Option) (*Engine, error) {
	if cfg.StepCost <= 0 || cfg.TurnCost <= 0 || cfg.StepCost > maze.MaxCost || cfg.TurnCost > maze.MaxCost {
		return nil, fmt.Errorf("%w: step=%d turn=%d", dijkstra.ErrBadCosts, cfg.StepCost, cfg.TurnCost)
	}
	if cfg.MaxDistance < 0 {
		return nil, fmt.Errorf("%w: got %d", dijkstra.ErrBadMaxDistance, cfg.MaxDistance)
	}
	e := &Engine{
		cfg:    cfg,
		costs:  maze.Costs{Step: cfg.StepCost, Turn: cfg.TurnCost},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Query is one maze to solve.
type Query struct {
	// Name labels the query in logs and reports, e.g. a file name.
	Name string
	// Text is the maze text.
	Text string
	// Tiles overrides config.Solver.ExtractTiles when non-nil.
	Tiles *bool
}

// Report is the answer to one query.
type Report struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	// Reachable is false when no path joins start and goal; Cost and Tiles
	// are then zero.
	Reachable bool  `json:"reachable"`
	Cost      int64 `json:"cost"`
	// Tiles counts cells on at least one optimal path; zero when extraction
	// was not requested.
	Tiles     int             `json:"tiles"`
	Positions []maze.Position `json:"positions,omitempty"`
	// Prechecked is true when the connectivity precheck answered the query
	// without running the solver.
	Prechecked bool           `json:"prechecked,omitempty"`
	Stats      dijkstra.Stats `json:"stats"`
	Elapsed    time.Duration  `json:"elapsed_ns"`

	// set is kept for rendering; not serialized.
	set *pathset.Set
}

// Marks returns the optimal cells for maze.Render, or nil when tiles were
// not extracted.
func (r *Report) Marks() map[maze.Position]struct{} {
	if r.set == nil {
		return nil
	}

	return r.set.Marks()
}

// Solve parses q.Text and answers the query.
// Returns an error wrapping maze.ErrMalformedMaze for bad input,
// pathset.ErrInternalInconsistency on a solver bug, or a context error.
// An unreachable goal is not an error: the Report has Reachable == false.
func (e *Engine) Solve(ctx context.Context, q Query) (*Report, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "engine.Solve", trace.WithAttributes(
		attribute.String("maze.name", q.Name),
		attribute.Int("maze.bytes", len(q.Text)),
	))
	defer span.End()

	_, parseSpan := tracer.Start(ctx, "maze.Parse")
	m, err := maze.Parse(q.Text)
	if err != nil {
		parseSpan.RecordError(err)
		parseSpan.SetStatus(codes.Error, err.Error())
		parseSpan.End()
		span.SetStatus(codes.Error, "malformed maze")
		e.record(OutcomeMalformed, start)
		e.logger.Warn("rejected malformed maze", slog.String("maze", q.Name), slog.Any("error", err))

		return nil, err
	}
	parseSpan.SetAttributes(
		attribute.Int("maze.width", m.Width),
		attribute.Int("maze.height", m.Height),
		attribute.Int("maze.open_cells", m.OpenCells()),
	)
	parseSpan.End()

	tiles := e.cfg.ExtractTiles
	if q.Tiles != nil {
		tiles = *q.Tiles
	}

	return e.solve(ctx, q.Name, m, tiles, start)
}

// SolveMaze answers a query for an already parsed maze.
func (e *Engine) SolveMaze(ctx context.Context, name string, m *maze.Maze, tiles bool) (*Report, error) {
	if m == nil {
		return nil, dijkstra.ErrNilMaze
	}
	ctx, span := tracer.Start(ctx, "engine.SolveMaze", trace.WithAttributes(
		attribute.String("maze.name", name),
	))
	defer span.End()

	return e.solve(ctx, name, m, tiles, time.Now())
}

// solve runs precheck, solver and extractor on m under the span in ctx.
func (e *Engine) solve(ctx context.Context, name string, m *maze.Maze, tiles bool, start time.Time) (*Report, error) {
	span := trace.SpanFromContext(ctx)
	rep := &Report{ID: uuid.NewString(), Name: name}
	logger := e.logger.With(slog.String("query_id", rep.ID), slog.String("maze", name))
	span.SetAttributes(attribute.String("query.id", rep.ID), attribute.Bool("query.tiles", tiles))

	if e.cfg.Precheck && !m.Connected(m.Start.Pos, m.Goal) {
		rep.Prechecked = true
		rep.Elapsed = time.Since(start)
		span.SetAttributes(attribute.Bool("maze.reachable", false))
		e.record(OutcomeUnreachable, start)
		logger.Info("goal unreachable", slog.Bool("prechecked", true))

		return rep, nil
	}

	// Solve.
	opts := []dijkstra.Option{
		dijkstra.WithContext(ctx),
		dijkstra.WithCosts(e.costs),
	}
	if e.cfg.MaxDistance > 0 {
		opts = append(opts, dijkstra.WithMaxDistance(e.cfg.MaxDistance))
	}
	if !tiles {
		opts = append(opts, dijkstra.WithoutPredecessors())
	}
	_, solveSpan := tracer.Start(ctx, "dijkstra.Dijkstra")
	res, err := dijkstra.Dijkstra(m, opts...)
	if err != nil {
		solveSpan.RecordError(err)
		solveSpan.SetStatus(codes.Error, err.Error())
		solveSpan.End()
		span.SetStatus(codes.Error, "solve failed")
		e.record(OutcomeError, start)
		logger.Error("solve failed", slog.Any("error", err))

		return nil, err
	}
	rep.Stats = res.Stats
	solveSpan.SetAttributes(
		attribute.Int("dijkstra.finalized", res.Stats.Finalized),
		attribute.Int("dijkstra.stale_pops", res.Stats.StalePops),
		attribute.Int("dijkstra.ties", res.Stats.Ties),
	)
	solveSpan.End()
	statesFinalized.Observe(float64(res.Stats.Finalized))
	stalePops.Add(float64(res.Stats.StalePops))

	cost, err := res.MinCost()
	if errors.Is(err, dijkstra.ErrUnreachable) {
		rep.Elapsed = time.Since(start)
		span.SetAttributes(attribute.Bool("maze.reachable", false))
		e.record(OutcomeUnreachable, start)
		logger.Info("goal unreachable", slog.Int("finalized", res.Stats.Finalized))

		return rep, nil
	}
	rep.Reachable = true
	rep.Cost = cost
	span.SetAttributes(attribute.Bool("maze.reachable", true), attribute.Int64("maze.cost", cost))

	// Extract.
	if tiles {
		_, extractSpan := tracer.Start(ctx, "pathset.Positions")
		set, err := pathset.Positions(res, pathset.WithContext(ctx))
		if err != nil {
			extractSpan.RecordError(err)
			extractSpan.SetStatus(codes.Error, err.Error())
			extractSpan.End()
			span.SetStatus(codes.Error, "extraction failed")
			outcome := OutcomeError
			if errors.Is(err, pathset.ErrInternalInconsistency) {
				outcome = OutcomeInconsistent
			}
			e.record(outcome, start)
			logger.Error("extraction failed", slog.Int64("cost", cost), slog.Any("error", err))

			return nil, err
		}
		extractSpan.SetAttributes(attribute.Int("pathset.tiles", set.Len()))
		extractSpan.End()

		rep.set = set
		rep.Tiles = set.Len()
		rep.Positions = set.Sorted()
		optimalTiles.Observe(float64(rep.Tiles))
	}

	rep.Elapsed = time.Since(start)
	e.record(OutcomeSolved, start)
	logger.Info("maze solved",
		slog.Int64("cost", rep.Cost),
		slog.Int("tiles", rep.Tiles),
		slog.Int("finalized", rep.Stats.Finalized),
		slog.Duration("elapsed", rep.Elapsed),
	)

	return rep, nil
}

// record counts one query outcome and its duration.
func (e *Engine) record(outcome string, start time.Time) {
	solvesTotal.WithLabelValues(outcome).Inc()
	solveDuration.Observe(time.Since(start).Seconds())
}

// Outcome pairs a query's Report with its error; exactly one is non-nil.
type Outcome struct {
	Query  Query
	Report *Report
	Err    error
}

// SolveAll answers every query with at most workers in flight. The result
// has one Outcome per query, in input order. Per-query failures are returned
// in the matching Outcome; queries not started before ctx ended carry the
// context error. The returned error is non-nil only when ctx ended.
func (e *Engine) SolveAll(ctx context.Context, queries []Query, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Outcome, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		if err := gctx.Err(); err != nil {
			out[i] = Outcome{Query: q, Err: err}
			continue
		}
		g.Go(func() error {
			rep, err := e.Solve(gctx, q)
			out[i] = Outcome{Query: q, Report: rep, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, ctx.Err()
}
