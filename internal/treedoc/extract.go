package treedoc

import (
	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
)

// Extract projects the fields present on spec into the optional part of a
// tree document. Only the fields listed here are carried over; anything else
// on the spec is dropped.
//
// The JSON-encoded fields (attributes, updates, locations) are carried as raw
// JSON. Attributes and locations keep any valid JSON value; updates keep the
// elements of a JSON array. A value that does not qualify is left out of the
// result without error.
func Extract(spec *domain.TreeSpec) domain.Extra {
	var extra domain.Extra
	if spec == nil {
		return extra
	}

	extra.Name = spec.Name
	extra.Description = spec.Description
	extra.ExternalURL = spec.ExternalURL
	extra.ImageIPFSHash = spec.ImageHash
	extra.Symbol = spec.Symbol
	extra.SymbolIPFSHash = spec.SymbolHash
	extra.AnimationURL = spec.AnimationURL
	extra.Diameter = spec.Diameter
	extra.Image = spec.ImageFS
	if spec.ImageIPFSHash != "" {
		extra.ImageIPFSHash = spec.ImageIPFSHash
	}
	extra.Nursery = spec.Nursery

	if raw := present(spec.Attributes); raw != "" && json.Valid([]byte(raw)) {
		extra.Attributes = json.RawMessage(raw)
	}
	if raw := present(spec.Updates); raw != "" {
		if updates, ok := rawArray(raw); ok {
			extra.Updates = updates
		}
	}
	if raw := present(spec.Locations); raw != "" && json.Valid([]byte(raw)) {
		extra.Locations = json.RawMessage(raw)
	}

	if spec.Latitude != "" || spec.Longitude != "" {
		extra.Location = &domain.Location{Latitude: spec.Latitude, Longitude: spec.Longitude}
	}
	return extra
}

func present(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
