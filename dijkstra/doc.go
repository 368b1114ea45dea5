// Package dijkstra provides Dijkstra's shortest-path algorithm over the
// directional state space of a maze: each state is a cell plus a facing,
// moving forward costs Costs.Step (1) and turning 90° costs Costs.Turn (1000).
//
// Overview:
//
//   - Computes the minimum cost from the maze's start state to every state in
//     O(S log S) time, where S = 4 × open cells.
//   - Records, for every state, the full set of predecessor states that
//     achieve its minimum, so all tied optimal routes can be recovered.
//   - Reports the goal cost as the minimum over the four goal facings.
//
// When to use:
//
//   - Cost-only queries: call Dijkstra with WithoutPredecessors() and read
//     Result.MinCost.
//   - Optimal-tile queries: call Dijkstra, then pathset.Positions on the Result.
//
// Correctness under duplicate heap entries:
//
//   - A state may be pushed several times before it is finalized. A popped
//     entry whose distance exceeds the state's current best, or whose state
//     is already finalized, is stale and skipped.
//   - Only finalized states relax their edges, and a predecessor is appended
//     only to a state that is not yet finalized. Since weights are positive,
//     every state's predecessor set is complete when it is popped.
//
// Error handling (sentinel errors):
//
//   - ErrNilMaze, ErrStartNotFound: invalid input.
//   - ErrBadCosts, ErrBadMaxDistance (both wrap ErrOptionViolation): invalid options.
//   - ErrUnreachable: returned by Result.MinCost and Result.GoalStates when
//     no goal facing has a finite distance. Callers branch on it explicitly.
//
// API reference:
//
//	func Dijkstra(m *maze.Maze, opts ...Option) (*Result, error)
//
//	  - opts:
//	      • WithCosts(maze.Costs):  step and turn weights.
//	      • WithMaxDistance(int64): states farther than this stay at Infinity.
//	      • WithContext(ctx):       abort when ctx is done.
//	      • WithoutPredecessors():  skip predecessor bookkeeping.
//
// Thread safety:
//
//   - Each call owns its tables; concurrent calls on the same *maze.Maze are safe.
package dijkstra
