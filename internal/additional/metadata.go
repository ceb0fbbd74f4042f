// Package additional holds the pure transformations behind the
// additional-data feature: custom registration forms and the metadata
// attached to every tree.
package additional

import (
	"sort"

	"github.com/treejer/ranger/backend/internal/domain"
)

// appVersionKey is the only key an app group contributes when it has one.
const appVersionKey = "appVersion"

// FormatMetadata groups flat details by access type. The result always has
// the public, private and app groups. Details with any other access type are
// dropped; a later detail overwrites an earlier one with the same key.
func FormatMetadata(details []domain.Detail) domain.Metadata {
	md := domain.Metadata{
		domain.AccessPublic:  {},
		domain.AccessPrivate: {},
		domain.AccessApp:     {},
	}
	for _, d := range details {
		group, ok := md[d.AccessType]
		if !ok {
			continue
		}
		group[d.Key] = d.Value
	}
	return md
}

// FlattenMetadata turns grouped metadata back into flat details.
//
// An app group that has a non-empty appVersion contributes only that key.
// Otherwise every group other than public is emitted as private, and only
// string values are kept. Groups come out as public, private, app, then any
// others by name; keys within a group are sorted.
func FlattenMetadata(md domain.Metadata) []domain.Detail {
	var out []domain.Detail
	for _, name := range groupOrder(md) {
		group := md[name]
		if len(group) == 0 {
			continue
		}
		if name == domain.AccessApp {
			if v, ok := group[appVersionKey].(string); ok && v != "" {
				out = append(out, domain.Detail{Key: appVersionKey, Value: v, AccessType: domain.AccessApp})
				continue
			}
		}

		access := domain.AccessPrivate
		if name == domain.AccessPublic {
			access = domain.AccessPublic
		}
		for _, key := range sortedKeys(group) {
			if v, ok := group[key].(string); ok {
				out = append(out, domain.Detail{Key: key, Value: v, AccessType: access})
			}
		}
	}
	return out
}

func groupOrder(md domain.Metadata) []string {
	order := make([]string, 0, len(md))
	known := []string{domain.AccessPublic, domain.AccessPrivate, domain.AccessApp}
	for _, name := range known {
		if _, ok := md[name]; ok {
			order = append(order, name)
		}
	}
	var rest []string
	for name := range md {
		if name != domain.AccessPublic && name != domain.AccessPrivate && name != domain.AccessApp {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
