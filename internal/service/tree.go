// Package service contains the business logic for the Ranger backend.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

// TreeService implements business logic for tree specs.
type TreeService struct {
	repo repo.TreeRepo
}

// NewTreeService constructs a TreeService backed by the provided TreeRepo.
func NewTreeService(r repo.TreeRepo) *TreeService {
	return &TreeService{repo: r}
}

// Create validates and persists a tree spec.
// Returns domain.ErrValidation if a coordinate is not a decimal number or the
// nursery marker is not "", "true" or "false".
func (s *TreeService) Create(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error) {
	if err := validateTree(spec); err != nil {
		return domain.TreeSpec{}, err
	}
	result, err := s.repo.Create(ctx, spec)
	if err != nil {
		return domain.TreeSpec{}, fmt.Errorf("service.TreeService.Create: %w", err)
	}
	slog.InfoContext(ctx, "tree created", "tree_id", result.ID, "nursery", result.IsNursery())
	return result, nil
}

// GetByID returns a single tree.
func (s *TreeService) GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TreeSpec{}, fmt.Errorf("service.TreeService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trees and the total count.
func (s *TreeService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error) {
	trees, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TreeService.ListPaged: %w", err)
	}
	if trees == nil {
		trees = []domain.TreeSpec{}
	}
	return trees, total, nil
}

// Delete removes a tree and its submission history.
func (s *TreeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TreeService.Delete: %w", err)
	}
	slog.InfoContext(ctx, "tree deleted", "tree_id", id)
	return nil
}

// CanUpdateLocation reports whether a fresh GPS fix may replace the recorded
// location of tree id, for a registration flow that is (or is not) a nursery.
func (s *TreeService) CanUpdateLocation(ctx context.Context, id uuid.UUID, isNursery bool) (bool, error) {
	spec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.TreeService.CanUpdateLocation: %w", err)
	}
	return treedoc.CanUpdateTreeLocation(domain.Journey{Tree: &spec}, isNursery), nil
}

func validateTree(spec domain.TreeSpec) error {
	coords := [...]struct{ name, value string }{
		{"latitude", spec.Latitude},
		{"longitude", spec.Longitude},
	}
	for _, c := range coords {
		if c.value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(c.value, 64); err != nil {
			return fmt.Errorf("%w: %s %q is not a decimal number", domain.ErrValidation, c.name, c.value)
		}
	}
	switch spec.Nursery {
	case "", "true", "false":
	default:
		return fmt.Errorf("%w: nursery must be \"true\" or \"false\", got %q", domain.ErrValidation, spec.Nursery)
	}
	return nil
}
