package i

import (
	"context"

	"github.com/google/uuid"
)

// RenderCache stores rendered grids keyed by record ID so repeated render
// requests skip rebuilding the grid.
type RenderCache interface {
	// SetRender stores the rendered form of a grid record.
	SetRender(ctx context.Context, id uuid.UUID, render string) error

	// Render retrieves the rendered form of a grid record.
	// Returns an error if no render is cached for the ID.
	Render(ctx context.Context, id uuid.UUID) (string, error)
}
