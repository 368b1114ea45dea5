package maze

// Regions finds all 4-connected regions of open cells.
// Each region lists its cells in BFS discovery order; regions appear in
// row-major order of their first cell.
//
// Time:   O(W·H).
// Memory: O(W·H) for visited flags and output.
func (m *Maze) Regions() [][]Position {
	seen := make([]bool, len(m.cells))
	var regions [][]Position

	for i, c := range m.cells {
		if c == SymbolWall || seen[i] {
			continue
		}
		seen[i] = true
		queue := []Position{m.position(i)}

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, d := range directions {
				v := u.Add(d)
				if !m.Open(v) {
					continue
				}
				vi := m.index(v)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, v)
				}
			}
		}
		regions = append(regions, queue)
	}

	return regions
}

// Connected reports whether open cells a and b belong to the same region.
// Facing is irrelevant: turning in place is always possible, so any cell
// reachable by walking is reachable by the search.
// Returns false if either cell is a wall or out of bounds.
func (m *Maze) Connected(a, b Position) bool {
	if !m.Open(a) || !m.Open(b) {
		return false
	}
	if a == b {
		return true
	}

	seen := make([]bool, len(m.cells))
	seen[m.index(a)] = true
	queue := []Position{a}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, d := range directions {
			v := u.Add(d)
			if !m.Open(v) {
				continue
			}
			if v == b {
				return true
			}
			vi := m.index(v)
			if !seen[vi] {
				seen[vi] = true
				queue = append(queue, v)
			}
		}
	}

	return false
}
