package maze

import (
	"fmt"
	"strings"
)

// Maze is a parsed, immutable maze. Width and Height are the grid
// dimensions; cells holds the original symbols in row-major order.
type Maze struct {
	Width, Height int
	// Start is the start cell facing StartFacing.
	Start State
	// Goal is the goal cell; any facing there counts as arrival.
	Goal  Position
	cells []byte
	open  int
}

// Parse builds a Maze from text. Rows are separated by '\n' ("\r\n" is
// accepted) and trailing blank lines are ignored.
// Returns an error wrapping ErrMalformedMaze on ragged rows, unknown
// symbols, or a missing or duplicated 'S' or 'E'.
// Complexity: O(W×H) time and memory.
func Parse(text string) (*Maze, error) {
	lines := splitRows(text)
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyMaze
	}

	w, h := len(lines[0]), len(lines)
	m := &Maze{
		Width:  w,
		Height: h,
		cells:  make([]byte, 0, w*h),
	}

	var haveStart, haveGoal bool
	for y, row := range lines {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrRaggedRow, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			c := row[x]
			switch c {
			case SymbolWall:
			case SymbolOpen:
				m.open++
			case SymbolStart:
				if haveStart {
					return nil, fmt.Errorf("%w: second 'S' at %d,%d", ErrDuplicateMarker, x, y)
				}
				haveStart = true
				m.Start = State{Pos: Position{X: x, Y: y}, Dir: StartFacing}
				m.open++
			case SymbolGoal:
				if haveGoal {
					return nil, fmt.Errorf("%w: second 'E' at %d,%d", ErrDuplicateMarker, x, y)
				}
				haveGoal = true
				m.Goal = Position{X: x, Y: y}
				m.open++
			default:
				return nil, fmt.Errorf("%w: %q at %d,%d", ErrUnknownSymbol, c, x, y)
			}
			m.cells = append(m.cells, c)
		}
	}

	if !haveStart {
		return nil, ErrMissingStart
	}
	if !haveGoal {
		return nil, ErrMissingGoal
	}

	return m, nil
}

// splitRows splits text into rows, dropping '\r' line terminators and
// trailing blank lines.
func splitRows(text string) []string {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// InBounds reports whether p lies within the grid.
func (m *Maze) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Symbol returns the symbol at p, or SymbolWall outside the grid.
func (m *Maze) Symbol(p Position) byte {
	if !m.InBounds(p) {
		return SymbolWall
	}

	return m.cells[m.index(p)]
}

// Open reports whether p is an open cell ('.', 'S' or 'E').
func (m *Maze) Open(p Position) bool {
	return m.Symbol(p) != SymbolWall
}

// Contains reports whether s is a state of the maze: an open cell with a
// valid facing.
func (m *Maze) Contains(s State) bool {
	return s.Dir.Valid() && m.Open(s.Pos)
}

// OpenCells returns the number of open cells.
func (m *Maze) OpenCells() int {
	return m.open
}

// NumStates returns the number of search states, four per open cell.
func (m *Maze) NumStates() int {
	return 4 * m.open
}

// States returns every state of the maze in row-major cell order,
// facings in North, East, South, West order.
func (m *Maze) States() []State {
	states := make([]State, 0, m.NumStates())
	for i, c := range m.cells {
		if c == SymbolWall {
			continue
		}
		p := m.position(i)
		for _, d := range directions {
			states = append(states, State{Pos: p, Dir: d})
		}
	}

	return states
}

// GoalStates returns the four states at the goal cell.
func (m *Maze) GoalStates() [4]State {
	var out [4]State
	for i, d := range directions {
		out[i] = State{Pos: m.Goal, Dir: d}
	}

	return out
}

// AppendNeighbors appends the outgoing edges of s to dst and returns the
// extended slice: at most one forward edge and exactly two turn edges.
// s must be a state of m.
func (m *Maze) AppendNeighbors(dst []Edge, s State, c Costs) []Edge {
	if next := s.Pos.Add(s.Dir); m.Open(next) {
		dst = append(dst, Edge{To: State{Pos: next, Dir: s.Dir}, Weight: c.Step})
	}
	for _, d := range s.Dir.Perpendicular() {
		dst = append(dst, Edge{To: State{Pos: s.Pos, Dir: d}, Weight: c.Turn})
	}

	return dst
}

// index maps p to its row-major index: y*Width + x.
func (m *Maze) index(p Position) int {
	return p.Y*m.Width + p.X
}

// position converts a row-major index back to a Position.
func (m *Maze) position(idx int) Position {
	return Position{X: idx % m.Width, Y: idx / m.Width}
}
