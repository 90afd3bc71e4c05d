package relaystore

import "errors"

var (
	// ErrNotFound indicates no record exists for the requested subnet and
	// height.
	ErrNotFound = errors.New("relaystore: not found")

	// ErrDuplicateBundle indicates a bundle is already stored for the
	// subnet and height.
	ErrDuplicateBundle = errors.New("relaystore: bundle already stored")
)
