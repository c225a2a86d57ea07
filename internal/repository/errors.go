// Package repository provides access to the venue catalog, either from the
// built-in data or from MySQL when a database is configured.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue lookup yields no match.
// Handlers should translate this into an HTTP 404 response.
var ErrVenueNotFound = errors.New("venue not found")
