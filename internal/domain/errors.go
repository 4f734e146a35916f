package domain

import "errors"

// Error taxonomy shared across services. Specific conditions (duplicate slug,
// used invite, ...) are declared next to the service that detects them and are
// mapped to HTTP statuses at the API boundary.
var (
	ErrUnauthorized = errors.New("unauthorized: no organization associated with user")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
