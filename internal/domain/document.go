package domain

import "github.com/goccy/go-json"

// Location is a coordinate pair as it appears in a tree document.
// Values are strings: either fixed-point microdegrees ("35700001") for fresh
// GPS fixes, or whatever decimal form the backend recorded for older ones.
type Location struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// UpdateEntry is the update-history element written for a new photo. Stored
// history elements are kept as raw JSON and need not have this shape.
type UpdateEntry struct {
	Image     string `json:"image"`
	ImageHash string `json:"image_hash"`
	CreatedAt string `json:"created_at"`
}

// Extra holds the optional keys of a tree document that are carried over
// from the tree's prior specification. Absent values are omitted on encode.
// Updates holds the stored history elements byte for byte; Locations holds
// whatever JSON value the stored location history decoded to.
type Extra struct {
	Name           string            `json:"name,omitempty"`
	Description    string            `json:"description,omitempty"`
	ExternalURL    string            `json:"external_url,omitempty"`
	ImageIPFSHash  string            `json:"image_ipfs_hash,omitempty"`
	Symbol         string            `json:"symbol,omitempty"`
	SymbolIPFSHash string            `json:"symbol_ipfs_hash,omitempty"`
	AnimationURL   string            `json:"animation_url,omitempty"`
	Diameter       string            `json:"diameter,omitempty"`
	Attributes     json.RawMessage   `json:"attributes,omitempty"`
	Image          string            `json:"image,omitempty"`
	Nursery        string            `json:"nursery,omitempty"`
	Location       *Location         `json:"location,omitempty"`
	Locations      json.RawMessage   `json:"locations,omitempty"`
	Updates        []json.RawMessage `json:"updates,omitempty"`
}

// Document is the canonical tree document submitted to the backend.
// Its own Location and Updates shadow the fields of the same name in the
// embedded Extra, both in Go and in the encoded JSON, so freshly computed
// values always win over stale copies carried in from the prior spec.
type Document struct {
	Extra
	Location Location          `json:"location"`
	Updates  []json.RawMessage `json:"updates"`
}
