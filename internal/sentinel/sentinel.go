// Package sentinel holds the errors storage backends return. Services map
// them to domain errors once, at the service boundary.
package sentinel

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")
)
