package i

import (
	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// GridRepo defines the interface for grid record persistence operations.
type GridRepo interface {
	// Save inserts or updates a grid record in the repository.
	Save(record *dmn.GridRecord) error

	// ByID retrieves a grid record by its unique ID.
	// Returns an error if the record is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.GridRecord, error)

	// ByOwner retrieves every grid record generated for the given owner.
	ByOwner(ownerID uuid.UUID) ([]*dmn.GridRecord, error)
}
