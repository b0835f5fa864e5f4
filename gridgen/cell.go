package gridgen

// CellState describes what a single grid cell holds after generation.
type CellState byte

const (
	// Wall is the default state of every cell before carving.
	Wall CellState = iota

	// Path marks a cell carved by a solution walk or a dead-end branch.
	Path

	// Start marks the sanitized start cell.
	Start

	// End marks the sanitized end cell. It is stamped last, so it wins
	// when start and end sanitize to the same cell.
	End
)

// Rune returns the display character for the state.
func (s CellState) Rune() rune {
	switch s {
	case Path:
		return ' '
	case Start:
		return 'S'
	case End:
		return 'E'
	default:
		return '█'
	}
}

// String returns the state name.
func (s CellState) String() string {
	switch s {
	case Wall:
		return "Wall"
	case Path:
		return "Path"
	case Start:
		return "Start"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// Point is a grid coordinate. X runs along the horizontal axis,
// Z along the vertical one.
type Point struct {
	X int
	Z int
}

// Segment is one step of a walk between two adjacent lattice points.
type Segment struct {
	From Point // Lattice point the step left from
	To   Point // Lattice point the step arrived at
}
