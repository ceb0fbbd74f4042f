package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/treejer/ranger/backend/internal/additional"
	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
)

// AdditionalDataService imports and serves the custom registration forms and
// tree metadata.
type AdditionalDataService struct {
	repo repo.AdditionalDataRepo
}

// NewAdditionalDataService constructs an AdditionalDataService.
func NewAdditionalDataService(r repo.AdditionalDataRepo) *AdditionalDataService {
	return &AdditionalDataService{repo: r}
}

// Import replaces all stored forms and metadata with the contents of an
// additional-data file. Returns domain.ErrValidation if the file is malformed
// or a metadata detail has an unknown access type.
func (s *AdditionalDataService) Import(ctx context.Context, raw []byte) error {
	imp, err := additional.ParseImport(raw)
	if err != nil {
		return fmt.Errorf("service.AdditionalDataService.Import: %w", err)
	}
	for _, d := range imp.Metadata {
		switch d.AccessType {
		case domain.AccessPublic, domain.AccessPrivate, domain.AccessApp:
		default:
			return fmt.Errorf("service.AdditionalDataService.Import: %w: metadata %q has unknown access type %q",
				domain.ErrValidation, d.Key, d.AccessType)
		}
	}

	if err := s.repo.ReplaceAll(ctx, imp.Forms, imp.Metadata); err != nil {
		return fmt.Errorf("service.AdditionalDataService.Import: %w", err)
	}
	slog.InfoContext(ctx, "additional data imported", "forms", len(imp.Forms), "metadata", len(imp.Metadata))
	return nil
}

// Forms returns the stored forms narrowed to the elements that apply to f.
func (s *AdditionalDataService) Forms(ctx context.Context, f domain.FormFilter) ([]domain.Form, error) {
	forms, err := s.repo.ListForms(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AdditionalDataService.Forms: %w", err)
	}
	return additional.FilterForms(forms, f), nil
}

// Metadata returns the stored metadata grouped by access type.
func (s *AdditionalDataService) Metadata(ctx context.Context) (domain.Metadata, error) {
	details, err := s.repo.ListMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.AdditionalDataService.Metadata: %w", err)
	}
	return additional.FormatMetadata(details), nil
}
