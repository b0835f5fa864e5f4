package i

import (
	"context"

	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
	"github.com/gridweave/gridweave-api/gridgen"
)

// Generator produces one grid for the parameter set it was built with.
type Generator interface {
	Generate() *gridgen.Grid
}

// GridManager orchestrates grid generation, persistence and rendering.
type GridManager interface {
	// Generate runs the generator for the given owner and stores the result.
	Generate(ctx context.Context, ownerID uuid.UUID, params *gridgen.Params) (*dmn.GridRecord, error)

	// ByID retrieves a stored grid record.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.GridRecord, error)

	// ByOwner retrieves every grid record stored for an owner.
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.GridRecord, error)

	// Render returns the textual form of a stored grid.
	Render(ctx context.Context, id uuid.UUID) (string, error)
}

// BatchQueuer accepts generation jobs for asynchronous processing.
type BatchQueuer interface {
	// Enqueue validates and queues one generation job, returning its ID.
	Enqueue(ctx context.Context, ownerID uuid.UUID, params *gridgen.Params) (uuid.UUID, error)

	// Pending returns how many jobs are waiting.
	Pending(ctx context.Context) int64
}
