package treedoc

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/treejer/ranger/backend/internal/domain"
)

// BuildUpdate creates the update entry for a freshly uploaded photo.
func (a *Assembler) BuildUpdate(baseURL, photoHash string) domain.UpdateEntry {
	return domain.UpdateEntry{
		Image:     a.resolve(baseURL, photoHash),
		ImageHash: photoHash,
		CreatedAt: strconv.FormatInt(a.now().Unix(), 10),
	}
}

// NewTree builds the document for a tree registered on this journey.
// The location is always the journey's GPS fix. A journey explicitly marked
// as not single (a nursery batch) gets the nursery marker.
func (a *Assembler) NewTree(baseURL, photoHash string, j domain.Journey) (domain.Document, error) {
	if err := requireFix(j); err != nil {
		return domain.Document{}, err
	}
	updates, err := appendUpdate(nil, a.BuildUpdate(baseURL, photoHash))
	if err != nil {
		return domain.Document{}, err
	}

	doc := domain.Document{
		Location: FixedPointLocation(*j.Location),
		Updates:  updates,
	}
	if j.IsSingle != nil && !*j.IsSingle {
		doc.Nursery = "true"
	}
	return doc, nil
}

// UpdateTree builds the document for a field visit to an existing tree.
//
// The tree keeps its recorded location unless it is a nursery tree, the
// journey has a GPS fix, and the agent has not opted to keep the nursery
// location. In that case the fix replaces the location and the superseded
// one is appended to the location history.
//
// A stored update history that is not a JSON array aborts assembly with
// domain.ErrMalformedHistory. A stored location history that is not a JSON
// array is treated as empty. Stored elements of either history are kept
// byte for byte.
func (a *Assembler) UpdateTree(baseURL, photoHash string, j domain.Journey, prior *domain.TreeSpec) (domain.Document, error) {
	if j.Location != nil && !j.Location.InRange() {
		return domain.Document{}, outOfRange(*j.Location)
	}
	updates, err := appendUpdate(prior, a.BuildUpdate(baseURL, photoHash))
	if err != nil {
		return domain.Document{}, err
	}

	var recorded domain.Location
	if prior != nil {
		recorded = domain.Location{Latitude: prior.Latitude, Longitude: prior.Longitude}
	}

	doc := domain.Document{
		Extra:    Extract(prior),
		Location: recorded,
		Updates:  updates,
	}

	if prior != nil && prior.IsNursery() && j.HasFix() && !j.NurseryContinuedUpdatingLocation {
		doc.Location = FixedPointLocation(*j.Location)
		history, err := appendLocation(locationHistory(prior), recorded)
		if err != nil {
			return domain.Document{}, err
		}
		doc.Locations = history
	}
	return doc, nil
}

// AssignedTree builds the document for a tree assigned to the agent, such as
// one grown in a nursery and now planted. The location is always the
// journey's GPS fix.
func (a *Assembler) AssignedTree(baseURL, photoHash string, j domain.Journey, prior *domain.TreeSpec) (domain.Document, error) {
	updates, err := appendUpdate(prior, a.BuildUpdate(baseURL, photoHash))
	if err != nil {
		return domain.Document{}, err
	}
	if err := requireFix(j); err != nil {
		return domain.Document{}, err
	}

	return domain.Document{
		Extra:    Extract(prior),
		Location: FixedPointLocation(*j.Location),
		Updates:  updates,
	}, nil
}

func requireFix(j domain.Journey) error {
	if j.Location == nil {
		return fmt.Errorf("%w: journey has no location", domain.ErrValidation)
	}
	if !j.Location.InRange() {
		return outOfRange(*j.Location)
	}
	return nil
}

func outOfRange(c domain.Coordinate) error {
	return fmt.Errorf("%w: location (%v, %v) is outside ±90 latitude or ±180 longitude",
		domain.ErrValidation, c.Latitude, c.Longitude)
}

// appendUpdate decodes the stored update history of prior as an array and
// appends entry. The stored elements are not interpreted. Unlike Extract, a
// history that is not a JSON array (including null) is an error.
func appendUpdate(prior *domain.TreeSpec, entry domain.UpdateEntry) ([]json.RawMessage, error) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("treedoc.appendUpdate: %w", err)
	}
	if prior == nil || present(prior.Updates) == "" {
		return []json.RawMessage{raw}, nil
	}

	updates, ok := rawArray(*prior.Updates)
	if !ok {
		return nil, fmt.Errorf("%w: update history is not a JSON array", domain.ErrMalformedHistory)
	}
	return append(updates, raw), nil
}

// appendLocation appends loc to an already decoded location history and
// encodes the result.
func appendLocation(history []json.RawMessage, loc domain.Location) (json.RawMessage, error) {
	raw, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("treedoc.appendLocation: %w", err)
	}
	out, err := json.Marshal(append(history, raw))
	if err != nil {
		return nil, fmt.Errorf("treedoc.appendLocation: %w", err)
	}
	return out, nil
}

// rawArray splits a JSON array into its elements without decoding them.
// It reports false for invalid JSON and for any value other than an array.
func rawArray(s string) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil || elems == nil {
		return nil, false
	}
	return elems, true
}
