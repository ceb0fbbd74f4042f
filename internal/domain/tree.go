// Package domain contains the core data types for the Treejer Ranger backend.
// This package has no dependencies on other internal packages and is imported
// by every one of them (treedoc, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TreeSpec is the last-known specification of a tree as recorded by the
// backend. Plain string fields are absent when empty. Attributes, Updates and
// Locations hold JSON-encoded values exactly as stored upstream; nil means the
// field was never recorded, which is distinct from an empty string.
type TreeSpec struct {
	ID            uuid.UUID `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalURL   string    `json:"externalUrl,omitempty" yaml:"externalUrl,omitempty"`
	ImageHash     string    `json:"imageHash,omitempty" yaml:"imageHash,omitempty"`
	Symbol        string    `json:"symbolFs,omitempty" yaml:"symbolFs,omitempty"`
	SymbolHash    string    `json:"symbolHash,omitempty" yaml:"symbolHash,omitempty"`
	AnimationURL  string    `json:"animationUrl,omitempty" yaml:"animationUrl,omitempty"`
	Diameter      string    `json:"diameter,omitempty" yaml:"diameter,omitempty"`
	ImageFS       string    `json:"imageFs,omitempty" yaml:"imageFs,omitempty"`
	ImageIPFSHash string    `json:"image_ipfs_hash,omitempty" yaml:"image_ipfs_hash,omitempty"`
	Nursery       string    `json:"nursery,omitempty" yaml:"nursery,omitempty"`
	Latitude      string    `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude     string    `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Attributes    *string   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Updates       *string   `json:"updates,omitempty" yaml:"updates,omitempty"`
	Locations     *string   `json:"locations,omitempty" yaml:"locations,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// IsNursery reports whether the spec carries the nursery marker.
// Only the exact string "true" counts.
func (t TreeSpec) IsNursery() bool {
	return t.Nursery == "true"
}

// Coordinate is a GPS fix in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"min=-180,max=180"`
}

// InRange reports whether c lies within ±90 latitude and ±180 longitude.
// NaN components are out of range.
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Journey is the data captured during the current field visit for one tree.
// IsSingle is a tri-state: nil when the registration flow did not say whether
// this is a single tree or a nursery batch.
type Journey struct {
	Location                         *Coordinate `json:"location,omitempty" yaml:"location,omitempty"`
	IsSingle                         *bool       `json:"isSingle,omitempty" yaml:"isSingle,omitempty"`
	NurseryContinuedUpdatingLocation bool        `json:"nurseryContinuedUpdatingLocation,omitempty" yaml:"nurseryContinuedUpdatingLocation,omitempty"`
	Tree                             *TreeSpec   `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// HasFix reports whether the journey carries a usable GPS fix.
// A zero latitude or longitude is treated as "no fix", the way the device
// reports an unresolved location.
func (j Journey) HasFix() bool {
	return j.Location != nil && j.Location.Latitude != 0 && j.Location.Longitude != 0
}
