// Package gridapi provides structures and utilities for requesting grid
// generation and returning stored grids.
package gridapi

import (
	"strings"
	"time"

	dmn "github.com/gridweave/gridweave-api/domain"
	"github.com/gridweave/gridweave-api/gridgen"
)

// GenerateRequest represents a request to generate a new grid.
type GenerateRequest struct {
	StartX         int    `json:"start_x" binding:"required,min=1"`
	StartZ         int    `json:"start_z" binding:"required,min=1"`
	EndX           int    `json:"end_x" binding:"required,min=1"`
	EndZ           int    `json:"end_z" binding:"required,min=1"`
	Spacing        int    `json:"spacing" binding:"min=0"`
	FillPercent    int    `json:"fill_percent" binding:"required,min=1,max=100"`
	AllowBranching bool   `json:"allow_branching"`
	Seed           *int64 `json:"seed"` // Absent means an unseeded, non-reproducible run
}

// Params converts the request into generation parameters.
func (r *GenerateRequest) Params() *gridgen.Params {
	seed := gridgen.UnseededSeed
	if r.Seed != nil {
		seed = *r.Seed
	}

	return &gridgen.Params{
		Start:          gridgen.Point{X: r.StartX, Z: r.StartZ},
		End:            gridgen.Point{X: r.EndX, Z: r.EndZ},
		Spacing:        r.Spacing,
		AllowBranching: r.AllowBranching,
		FillPercent:    r.FillPercent,
		Seed:           seed,
	}
}

// BatchRequest represents a request to queue several generation jobs at once.
type BatchRequest struct {
	GenerateRequest
	Count int `json:"count" binding:"required,min=1,max=64"`
}

// PointResponse is a grid coordinate in a response body.
type PointResponse struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// GridResponse represents a stored grid. Rows holds the rendered grid, one
// string per row, using the generator's display characters.
type GridResponse struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Start     PointResponse `json:"start"`
	End       PointResponse `json:"end"`
	Connected bool          `json:"connected"`
	Rows      []string      `json:"rows"`
	CreatedAt time.Time     `json:"created_at"`
}

// BatchResponse acknowledges queued generation jobs.
type BatchResponse struct {
	JobIDs  []string `json:"job_ids"`
	Pending int64    `json:"pending"`
}

// NewGridResponse builds the response form of a stored grid record.
func NewGridResponse(record *dmn.GridRecord) (*GridResponse, error) {
	grid, err := record.Grid()
	if err != nil {
		return nil, err
	}

	return &GridResponse{
		ID:        record.ID.String(),
		OwnerID:   record.OwnerID.String(),
		Width:     record.Width,
		Height:    record.Height,
		Start:     PointResponse{X: record.StartX, Z: record.StartZ},
		End:       PointResponse{X: record.EndX, Z: record.EndZ},
		Connected: grid.Connected(),
		Rows:      strings.Split(grid.String(), "\n"),
		CreatedAt: record.CreatedAt,
	}, nil
}
