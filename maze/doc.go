// Package maze turns the text of a rectangular maze into the state space
// searched by the dijkstra package.
//
// What:
//
//   - A maze is a grid of symbols: '.' open, '#' wall, 'S' start, 'E' goal.
//   - Every open cell (including S and E) contributes four search states,
//     one per facing Direction.
//   - The start state always faces East; the goal is a Position and is
//     reached in any facing.
//
// Edges between states:
//
//   - Forward: (p, d) → (p+d, d) with weight Costs.Step, if p+d is open.
//   - Turn:    (p, d) → (p, d') for the two directions perpendicular to d,
//     with weight Costs.Turn. A 180° turn is two 90° turns, never one edge.
//
// Complexity:
//
//   - Parse:          O(W×H) time and memory.
//   - AppendNeighbors: O(1).
//   - Regions:        O(W×H) time and memory.
//
// Errors:
//
//   - ErrMalformedMaze wraps every parse failure: ErrEmptyMaze, ErrRaggedRow,
//     ErrUnknownSymbol, ErrMissingStart, ErrMissingGoal, ErrDuplicateMarker.
//     Use errors.Is(err, ErrMalformedMaze) to branch on any of them.
//
// A Maze is immutable once parsed and safe for concurrent readers.
package maze
