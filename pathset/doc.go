// Package pathset recovers every cell lying on at least one minimum-cost
// path, given the tables produced by the dijkstra package.
//
// What:
//
//   - Seeds a worklist with the frontier: all goal states tied for the
//     minimum cost.
//   - Walks the predecessor relation backward, breadth-first, with a visited
//     set of states so each state is expanded once.
//   - Collects the position of every visited state.
//
// Why a worklist:
//
//   - The traversal is O(S) in time and memory regardless of how many tied
//     paths exist, and never recurses.
//
// Invariant:
//
//   - The start position must be among the collected positions. If it is
//     not, the predecessor table is broken and Positions returns
//     ErrInternalInconsistency instead of a wrong answer.
//
// Errors:
//
//   - ErrNilResult:             nil *dijkstra.Result.
//   - ErrNoPredecessors:        result built with dijkstra.WithoutPredecessors().
//   - ErrUnreachable:           goal not reached; wraps dijkstra.ErrUnreachable.
//   - ErrInternalInconsistency: defensive check failed.
//   - ErrOptionViolation:       invalid option.
package pathset
