package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing photo hash, journey without a GPS fix).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedHistory is returned when a tree's stored update history cannot
// be decoded while a new update is being appended to it.
// Handlers should map this to HTTP 409 Conflict: retrying will not help until
// the stored record is repaired.
var ErrMalformedHistory = errors.New("malformed update history")

// ErrUnavailable is returned when an optional upstream collaborator
// (e.g. the geocoding provider) is not configured or not reachable.
// Handlers should map this to HTTP 503 Service Unavailable.
var ErrUnavailable = errors.New("service unavailable")
