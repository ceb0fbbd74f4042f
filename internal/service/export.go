package service

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

// ExportService assembles a flat export of every tree.
type ExportService struct {
	trees repo.TreeRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trees repo.TreeRepo) *ExportService {
	return &ExportService{trees: trees}
}

// Export returns one ExportRow per tree, newest first. Stored JSON that cannot
// be decoded counts as empty rather than failing the export.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trees, err := s.trees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(trees))
	for i := range trees {
		t := &trees[i]
		extra := treedoc.Extract(t)

		row := domain.ExportRow{
			TreeID:            t.ID.String(),
			Name:              t.Name,
			Nursery:           t.IsNursery(),
			Latitude:          t.Latitude,
			Longitude:         t.Longitude,
			UpdateCount:       len(extra.Updates),
			PreviousLocations: countElements(extra.Locations),
		}
		if n := len(extra.Updates); n > 0 {
			row.LastUpdateAt = createdAt(extra.Updates[n-1])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// countElements returns the length of a JSON array, or 0 for any other value.
func countElements(raw json.RawMessage) int {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return 0
	}
	return len(elems)
}

// createdAt reads created_at from a stored update entry. A string is returned
// as is; a number is returned in its JSON form.
func createdAt(entry json.RawMessage) string {
	var e struct {
		CreatedAt json.RawMessage `json:"created_at"`
	}
	if err := json.Unmarshal(entry, &e); err != nil || len(e.CreatedAt) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.CreatedAt, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(e.CreatedAt, &n); err == nil {
		return n.String()
	}
	return ""
}
