// Package mazepath finds minimum-cost routes through grid mazes where the
// walker has a facing, a forward step costs 1 and a 90° turn in place costs
// 1000, and it counts every tile lying on at least one cheapest route.
//
// What is inside?
//
//	maze/      - parse maze text into a grid; states (cell + facing) and their edges
//	dijkstra/  - Dijkstra over the state space, keeping every tied predecessor
//	pathset/   - walk the predecessor sets back from the goal to collect optimal tiles
//	engine/    - one-call queries with tracing, metrics, logging and batching
//	config/    - YAML + MAZEPATH_* environment configuration
//	logging/   - slog construction from config
//	server/    - HTTP surface (gin) with Prometheus /metrics
//	cmd/mazepath - the solve / inspect / serve command line
//
// Quick example:
//
//	#######
//	#....E#      S starts facing East.
//	#.....#      Four steps east, one turn north, two steps north:
//	#S....#      cost 4 + 1000 + 2 = 1006.
//	#######
//
// The search graph is never materialized: a state's outgoing edges are
// derived from the grid on demand, so memory stays O(cells).
//
// See each subpackage for details and runnable examples.
package mazepath
