// Package maze defines positions, facings, search states, edge costs and
// sentinel errors for the maze model.
package maze

import (
	"errors"
	"fmt"
)

// Sentinel errors for maze parsing. Every specific error wraps ErrMalformedMaze.
var (
	// ErrMalformedMaze indicates a structural parse failure.
	ErrMalformedMaze = errors.New("maze: malformed maze")
	// ErrEmptyMaze indicates the input has no rows or no columns.
	ErrEmptyMaze = fmt.Errorf("%w: no rows or no columns", ErrMalformedMaze)
	// ErrRaggedRow indicates a row whose length differs from the first row.
	ErrRaggedRow = fmt.Errorf("%w: rows differ in length", ErrMalformedMaze)
	// ErrUnknownSymbol indicates a symbol outside {'.', '#', 'S', 'E'}.
	ErrUnknownSymbol = fmt.Errorf("%w: unknown symbol", ErrMalformedMaze)
	// ErrMissingStart indicates no 'S' marker.
	ErrMissingStart = fmt.Errorf("%w: missing start marker 'S'", ErrMalformedMaze)
	// ErrMissingGoal indicates no 'E' marker.
	ErrMissingGoal = fmt.Errorf("%w: missing goal marker 'E'", ErrMalformedMaze)
	// ErrDuplicateMarker indicates more than one 'S' or more than one 'E'.
	ErrDuplicateMarker = fmt.Errorf("%w: duplicate marker", ErrMalformedMaze)
)

// Maze symbols.
const (
	SymbolOpen  byte = '.'
	SymbolWall  byte = '#'
	SymbolStart byte = 'S'
	SymbolGoal  byte = 'E'
)

// Position is a cell coordinate: X is the column, Y the row (growing downward).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved one cell in direction d.
func (p Position) Add(d Direction) Position {
	delta := d.Delta()

	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// String formats p as "x,y".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Direction is one of the four unit facings. The numeric values only
// enumerate the facings; they carry no ordering semantics.
type Direction uint8

const (
	// North faces toward row 0.
	North Direction = iota
	// East faces toward increasing columns.
	East
	// South faces toward increasing rows.
	South
	// West faces toward column 0.
	West
)

// StartFacing is the facing of every maze's start state.
const StartFacing = East

// directions lists all facings; index i holds Direction(i).
var directions = [4]Direction{North, East, South, West}

// deltas holds the unit vector of each Direction.
var deltas = [4]Position{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Directions returns all four facings.
func Directions() [4]Direction {
	return directions
}

// Valid reports whether d is one of the four facings.
func (d Direction) Valid() bool {
	return d <= West
}

// Delta returns the unit vector of d.
func (d Direction) Delta() Position {
	return deltas[d&3]
}

// Opposite returns the facing rotated by 180°.
func (d Direction) Opposite() Direction {
	return (d + 2) & 3
}

// Perpendicular returns the two facings reachable from d by a single 90° turn.
func (d Direction) Perpendicular() [2]Direction {
	return [2]Direction{(d + 1) & 3, (d + 3) & 3}
}

// String returns the compass name of d.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// State is a node of the search graph: a cell plus the facing held there.
// States are comparable and used directly as map keys.
type State struct {
	Pos Position
	Dir Direction
}

// String formats s as "x,y/Facing".
func (s State) String() string {
	return s.Pos.String() + "/" + s.Dir.String()
}

// Costs holds the weights of the two edge kinds.
type Costs struct {
	// Step is the cost of moving forward one cell.
	Step int64
	// Turn is the cost of rotating 90° in place.
	Turn int64
}

// MaxCost is the largest accepted Step or Turn weight. A route crosses each
// state at most once, so distances stay below 4×open cells×MaxCost and
// cannot overflow int64 for mazes under 2^20 open cells.
const MaxCost int64 = 1 << 40

// DefaultCosts returns Step=1, Turn=1000.
func DefaultCosts() Costs {
	return Costs{Step: 1, Turn: 1000}
}

// Edge is one outgoing transition of a state.
type Edge struct {
	To     State
	Weight int64
}
