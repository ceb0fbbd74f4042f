package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
)

// AreaNamer resolves a coordinate to a place name. *geocode.Client satisfies it.
type AreaNamer interface {
	AreaName(ctx context.Context, c domain.Coordinate) (string, error)
}

// OfflineMapService manages the records of map regions downloaded to devices.
type OfflineMapService struct {
	repo     repo.OfflineMapRepo
	geocoder AreaNamer
}

// NewOfflineMapService constructs an OfflineMapService.
func NewOfflineMapService(r repo.OfflineMapRepo, g AreaNamer) *OfflineMapService {
	return &OfflineMapService{repo: r, geocoder: g}
}

// Create stores a map record. Returns domain.ErrValidation for a blank name
// or a name that is already taken.
func (s *OfflineMapService) Create(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return domain.OfflineMap{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	result, err := s.repo.Create(ctx, m)
	if err != nil {
		return domain.OfflineMap{}, fmt.Errorf("service.OfflineMapService.Create: %w", err)
	}
	slog.InfoContext(ctx, "offline map saved", "name", result.Name, "area", result.AreaName)
	return result, nil
}

// List returns every stored map, newest first.
func (s *OfflineMapService) List(ctx context.Context) ([]domain.OfflineMap, error) {
	maps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.OfflineMapService.List: %w", err)
	}
	if maps == nil {
		return []domain.OfflineMap{}, nil
	}
	return maps, nil
}

// Delete removes a map record by name.
func (s *OfflineMapService) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("service.OfflineMapService.Delete: %w", err)
	}
	slog.InfoContext(ctx, "offline map deleted", "name", name)
	return nil
}

// AreaName names the place around c, for labelling a map before download.
// Returns domain.ErrValidation for coordinates outside the valid range.
func (s *OfflineMapService) AreaName(ctx context.Context, c domain.Coordinate) (string, error) {
	if !c.InRange() {
		return "", fmt.Errorf("%w: coordinate %v,%v out of range", domain.ErrValidation, c.Latitude, c.Longitude)
	}
	name, err := s.geocoder.AreaName(ctx, c)
	if err != nil {
		return "", fmt.Errorf("service.OfflineMapService.AreaName: %w", err)
	}
	return name, nil
}
