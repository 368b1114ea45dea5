package maze

import (
	"bufio"
	"io"
)

// Render writes the maze to w, one row per line, replacing every marked
// open cell with glyph. The 'S' and 'E' markers are kept so the endpoints
// stay visible. A nil mark writes the maze unchanged.
func (m *Maze) Render(w io.Writer, mark map[Position]struct{}, glyph byte) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := Position{X: x, Y: y}
			c := m.cells[m.index(p)]
			if c == SymbolOpen {
				if _, ok := mark[p]; ok {
					c = glyph
				}
			}
			if err := bw.WriteByte(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
