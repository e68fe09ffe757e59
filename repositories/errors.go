package repositories

import "errors"

var (
	// ErrInvalidID means the supplied identifier is not a 24-hex-char ObjectID.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound means no document matched the identifier.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means the process is running without a database
	// connection. Endpoints surface it as 503 rather than crashing.
	ErrStoreUnavailable = errors.New("store unavailable")
)
