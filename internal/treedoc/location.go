package treedoc

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
)

const microdegrees = 1_000_000

// FixedPoint converts decimal degrees to integer microdegrees, truncating
// toward zero, and renders the result as a base-10 string.
func FixedPoint(deg float64) string {
	return strconv.FormatInt(int64(math.Trunc(deg*microdegrees)), 10)
}

// FixedPointLocation applies FixedPoint to both components of c.
func FixedPointLocation(c domain.Coordinate) domain.Location {
	return domain.Location{
		Latitude:  FixedPoint(c.Latitude),
		Longitude: FixedPoint(c.Longitude),
	}
}

// CanUpdateTreeLocation reports whether a new GPS fix may replace the
// recorded location of the tree the journey refers to. It holds only for
// nursery trees whose location history is present and empty; a tree with no
// recorded history at all does not qualify.
//
// An explicitly empty history string counts as empty.
func CanUpdateTreeLocation(j domain.Journey, isNursery bool) bool {
	if !isNursery || j.Tree == nil || j.Tree.Locations == nil {
		return false
	}
	raw := *j.Tree.Locations
	if raw == "" {
		return true
	}
	history, ok := rawArray(raw)
	return ok && len(history) == 0
}

// locationHistory splits the stored location history of spec into its
// elements. Absent, empty or non-array history is treated as no history.
func locationHistory(spec *domain.TreeSpec) []json.RawMessage {
	history, _ := rawArray(present(spec.Locations))
	return history
}
