package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/gridweave/gridweave-api/gridgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridRecordRoundTrip(t *testing.T) {
	params := &gridgen.Params{
		Start:          gridgen.Point{X: 5, Z: 5},
		End:            gridgen.Point{X: 21, Z: 13},
		Spacing:        1,
		AllowBranching: true,
		FillPercent:    35,
		Seed:           77,
	}
	gen, err := gridgen.New(params)
	require.NoError(t, err)
	grid := gen.Generate()

	ownerID := uuid.New()
	record := NewGridRecord(ownerID, params, grid)

	assert.Equal(t, ownerID, record.OwnerID)
	assert.Equal(t, grid.Width*grid.Height, len(record.Cells))
	assert.Equal(t, params.Seed, record.Seed)

	rebuilt, err := record.Grid()
	require.NoError(t, err)
	assert.Equal(t, grid, rebuilt)

	reassembled := record.Params()
	assert.Equal(t, params.Spacing, reassembled.Spacing)
	assert.Equal(t, params.FillPercent, reassembled.FillPercent)
	assert.Equal(t, grid.Start, reassembled.Start)
}

func TestGridRecordCorruptCells(t *testing.T) {
	record := &GridRecord{
		ID:     uuid.New(),
		Width:  5,
		Height: 5,
		Cells:  []byte{0, 1, 2},
	}

	_, err := record.Grid()
	assert.Error(t, err)
}
