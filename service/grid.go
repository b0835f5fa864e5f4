package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
	"github.com/gridweave/gridweave-api/gridgen"
	"github.com/gridweave/gridweave-api/service/i"
)

// GeneratorFactory builds a generator for one parameter set. Construction
// validates the parameters, so a factory error is a caller error.
type GeneratorFactory func(*gridgen.Params) (i.Generator, error)

// GridService runs the path generator on request, persists the results and
// keeps rendered grids in a cache.
type GridService struct {
	repo    i.GridRepo
	cache   i.RenderCache
	factory GeneratorFactory
	logger  i.Logger
}

// GridConfig holds the dependencies of a GridService.
type GridConfig struct {
	Repo    i.GridRepo
	Cache   i.RenderCache
	Factory GeneratorFactory
	Logger  i.Logger
}

// NewGridService creates a GridService from its dependencies.
func NewGridService(c *GridConfig) (i.GridManager, error) {
	if c == nil || c.Repo == nil || c.Factory == nil || c.Logger == nil {
		return nil, errors.New("grid service requires a repository, a generator factory and a logger")
	}

	return &GridService{
		repo:    c.Repo,
		cache:   c.Cache,
		factory: c.Factory,
		logger:  c.Logger,
	}, nil
}

// Generate runs the generator for the given owner and stores the result.
// The render cache is populated best-effort; a cache failure never fails
// the generation.
func (s *GridService) Generate(ctx context.Context, ownerID uuid.UUID, params *gridgen.Params) (*dmn.GridRecord, error) {
	generator, err := s.factory(params)
	if err != nil {
		return nil, err
	}

	grid := generator.Generate()
	record := dmn.NewGridRecord(ownerID, params, grid)

	if err := s.repo.Save(record); err != nil {
		s.logger.Error(fmt.Sprintf("Storing grid record %s: %s", record.ID, err))
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("Generated %dx%d grid %s for owner %s", grid.Width, grid.Height, record.ID, ownerID))

	if s.cache != nil {
		if err := s.cache.SetRender(ctx, record.ID, grid.String()); err != nil {
			s.logger.Warning(fmt.Sprintf("Caching render for grid %s: %s", record.ID, err))
		}
	}

	return record, nil
}

// ByID retrieves a stored grid record.
func (s *GridService) ByID(ctx context.Context, id uuid.UUID) (*dmn.GridRecord, error) {
	return s.repo.ByID(id)
}

// ByOwner retrieves every grid record stored for an owner.
func (s *GridService) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.GridRecord, error) {
	return s.repo.ByOwner(ownerID)
}

// Render returns the textual form of a stored grid, rebuilding and
// re-caching it when the cache has no entry.
func (s *GridService) Render(ctx context.Context, id uuid.UUID) (string, error) {
	if s.cache != nil {
		if render, err := s.cache.Render(ctx, id); err == nil {
			return render, nil
		}
	}

	record, err := s.repo.ByID(id)
	if err != nil {
		return "", err
	}

	grid, err := record.Grid()
	if err != nil {
		return "", err
	}

	render := grid.String()
	if s.cache != nil {
		if err := s.cache.SetRender(ctx, id, render); err != nil {
			s.logger.Warning(fmt.Sprintf("Caching render for grid %s: %s", id, err))
		}
	}
	return render, nil
}
