package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gridweave/gridweave-api/gridgen"
)

// GridRecord represents the BSON version of a generated grid for database
// storage. The cell field is the grid flattened row-major by Z then X, one
// byte per cell.
type GridRecord struct {
	ID             uuid.UUID `bson:"_id"`
	OwnerID        uuid.UUID `bson:"ownerId"`
	Width          int       `bson:"width"`
	Height         int       `bson:"height"`
	StartX         int       `bson:"startX"`
	StartZ         int       `bson:"startZ"`
	EndX           int       `bson:"endX"`
	EndZ           int       `bson:"endZ"`
	Spacing        int       `bson:"spacing"`
	FillPercent    int       `bson:"fillPercent"`
	AllowBranching bool      `bson:"allowBranching"`
	Seed           int64     `bson:"seed"`
	Cells          []byte    `bson:"cells"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// NewGridRecord flattens a generated grid into its storable form.
func NewGridRecord(ownerID uuid.UUID, params *gridgen.Params, grid *gridgen.Grid) *GridRecord {
	cells := make([]byte, 0, grid.Width*grid.Height)
	for _, row := range grid.Cells {
		for _, cell := range row {
			cells = append(cells, byte(cell))
		}
	}

	return &GridRecord{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Width:          grid.Width,
		Height:         grid.Height,
		StartX:         grid.Start.X,
		StartZ:         grid.Start.Z,
		EndX:           grid.End.X,
		EndZ:           grid.End.Z,
		Spacing:        params.Spacing,
		FillPercent:    params.FillPercent,
		AllowBranching: params.AllowBranching,
		Seed:           params.Seed,
		Cells:          cells,
		CreatedAt:      time.Now().UTC(),
	}
}

// Grid rebuilds the generated grid from its flattened form.
func (r *GridRecord) Grid() (*gridgen.Grid, error) {
	if len(r.Cells) != r.Width*r.Height {
		return nil, fmt.Errorf("grid record %s holds %d cells for a %dx%d grid", r.ID, len(r.Cells), r.Width, r.Height)
	}

	cells := make([][]gridgen.CellState, r.Height)
	for z := range cells {
		cells[z] = make([]gridgen.CellState, r.Width)
		for x := range cells[z] {
			cells[z][x] = gridgen.CellState(r.Cells[z*r.Width+x])
		}
	}

	return &gridgen.Grid{
		Width:  r.Width,
		Height: r.Height,
		Start:  gridgen.Point{X: r.StartX, Z: r.StartZ},
		End:    gridgen.Point{X: r.EndX, Z: r.EndZ},
		Cells:  cells,
	}, nil
}

// Params reassembles a generation parameter set from the record, with the
// sanitized endpoints standing in for the raw ones.
func (r *GridRecord) Params() *gridgen.Params {
	return &gridgen.Params{
		Start:          gridgen.Point{X: r.StartX, Z: r.StartZ},
		End:            gridgen.Point{X: r.EndX, Z: r.EndZ},
		Spacing:        r.Spacing,
		AllowBranching: r.AllowBranching,
		FillPercent:    r.FillPercent,
		Seed:           r.Seed,
	}
}
