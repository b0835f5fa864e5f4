package gridgen

import "strings"

// Grid is the finished product of a generation run: a rectangular field of
// cell states, row-major by Z then X, plus the sanitized start and end
// points so consumers can locate the markers without scanning.
type Grid struct {
	Width  int             // Number of columns
	Height int             // Number of rows
	Start  Point           // Sanitized start cell, holds the Start marker
	End    Point           // Sanitized end cell, holds the End marker
	Cells  [][]CellState   // Cells[z][x]
}

// newGrid allocates a grid of the given dimensions with every cell a Wall.
func newGrid(width, height int) *Grid {
	cells := make([][]CellState, height)
	for z := range cells {
		cells[z] = make([]CellState, width)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// At returns the state of the cell at (x, z). Out-of-bounds coordinates
// report Wall, matching the solid border invariant.
func (g *Grid) At(x, z int) CellState {
	if !g.InBounds(x, z) {
		return Wall
	}
	return g.Cells[z][x]
}

// InBounds reports whether (x, z) lies inside the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Height
}

// CountState returns how many cells hold the given state.
func (g *Grid) CountState(s CellState) int {
	count := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell == s {
				count++
			}
		}
	}
	return count
}

// Connected reports whether the End cell is reachable from the Start cell
// through carved cells, moving one cell at a time in the four cardinal
// directions. Generation does not guarantee this; the walkers are expected
// to bridge the endpoints with high probability, not certainty.
func (g *Grid) Connected() bool {
	if g.At(g.Start.X, g.Start.Z) == Wall || g.At(g.End.X, g.End.Z) == Wall {
		return false
	}

	visited := make(map[Point]struct{})
	stack := []Point{g.Start}
	visited[g.Start] = struct{}{}

	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cell == g.End {
			return true
		}

		for _, delta := range [4]Point{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}} {
			next := Point{X: cell.X + delta.X, Z: cell.Z + delta.Z}
			if _, seen := visited[next]; seen {
				continue
			}
			if g.At(next.X, next.Z) == Wall {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	return false
}

// String provides a textual representation of the grid, one rune per cell.
func (g *Grid) String() string {
	var builder strings.Builder
	for z, row := range g.Cells {
		if z > 0 {
			builder.WriteByte('\n')
		}
		for _, cell := range row {
			builder.WriteRune(cell.Rune())
		}
	}
	return builder.String()
}
