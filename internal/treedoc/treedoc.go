// Package treedoc assembles the canonical JSON document that describes a
// tree's update history and location, ready to be submitted to the backend.
//
// Everything here is a pure transformation of already-fetched values: no I/O,
// no logging, no shared state. The only temporal input is the clock used to
// stamp new update entries, which callers may replace with WithClock.
package treedoc

import (
	"time"

	"github.com/treejer/ranger/backend/internal/ipfs"
)

// Resolver turns a gateway base URL and a content hash into a URL a human can
// fetch the photo from.
type Resolver func(base, hash string) string

// Assembler builds tree documents. The zero value is not usable; use New.
type Assembler struct {
	resolve Resolver
	now     func() time.Time
}

// Option configures an Assembler.
type Option func(a *Assembler)

// WithResolver replaces the download-URL resolver (default ipfs.DownloadURL).
func WithResolver(r Resolver) Option {
	return func(a *Assembler) {
		if r != nil {
			a.resolve = r
		}
	}
}

// WithClock replaces the clock used for created_at stamps (default time.Now).
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an Assembler with the given options applied over the defaults.
func New(opts ...Option) *Assembler {
	a := &Assembler{resolve: ipfs.DownloadURL, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
