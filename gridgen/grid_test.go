package gridgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildGrid turns a rune sketch into a grid, using the same characters the
// renderer emits.
func buildGrid(rows []string) *Grid {
	grid := newGrid(len([]rune(rows[0])), len(rows))
	for z, row := range rows {
		for x, r := range []rune(row) {
			switch r {
			case ' ':
				grid.Cells[z][x] = Path
			case 'S':
				grid.Cells[z][x] = Start
				grid.Start = Point{X: x, Z: z}
			case 'E':
				grid.Cells[z][x] = End
				grid.End = Point{X: x, Z: z}
			}
		}
	}
	return grid
}

func TestGridString(t *testing.T) {
	rows := []string{
		"█████",
		"█S █E",
		"███ █",
		"█   █",
		"█████",
	}
	grid := buildGrid(rows)

	assert.Equal(t, "█████\n█S █E\n███ █\n█   █\n█████", grid.String())
}

func TestGridAt(t *testing.T) {
	grid := buildGrid([]string{
		"███",
		"█S█",
		"███",
	})

	assert.Equal(t, Start, grid.At(1, 1))
	assert.Equal(t, Wall, grid.At(0, 0))

	// Out-of-bounds lookups report Wall, like the border.
	assert.Equal(t, Wall, grid.At(-1, 0))
	assert.Equal(t, Wall, grid.At(3, 1))
}

func TestGridCountState(t *testing.T) {
	grid := buildGrid([]string{
		"█████",
		"█S  █",
		"███E█",
		"█████",
	})

	assert.Equal(t, 1, grid.CountState(Start))
	assert.Equal(t, 1, grid.CountState(End))
	assert.Equal(t, 2, grid.CountState(Path))
	assert.Equal(t, 16, grid.CountState(Wall))
}

func TestGridConnected(t *testing.T) {
	t.Run("linked endpoints", func(t *testing.T) {
		grid := buildGrid([]string{
			"█████",
			"█S  █",
			"███ █",
			"█E  █",
			"█████",
		})
		assert.True(t, grid.Connected())
	})

	t.Run("severed endpoints", func(t *testing.T) {
		grid := buildGrid([]string{
			"█████",
			"█S █E",
			"█████",
		})
		assert.False(t, grid.Connected())
	})

	t.Run("endpoint inside a wall", func(t *testing.T) {
		grid := buildGrid([]string{
			"███",
			"█S█",
			"███",
		})
		grid.End = Point{X: 0, Z: 0}
		assert.False(t, grid.Connected())
	})
}

func TestCellStateRune(t *testing.T) {
	assert.Equal(t, '█', Wall.Rune())
	assert.Equal(t, ' ', Path.Rune())
	assert.Equal(t, 'S', Start.Rune())
	assert.Equal(t, 'E', End.Rune())
}
