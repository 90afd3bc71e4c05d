package manager

import "errors"

var (
	// ErrEcosystemMismatch indicates a call carried parameters tagged for a
	// different ecosystem than the backend's own. Calls fail immediately on
	// a mismatched tag; no partial interpretation is attempted.
	ErrEcosystemMismatch = errors.New("manager: parameter ecosystem does not match backend")

	// ErrUnsupportedOperation indicates the backend has no implementation of
	// the requested operation.
	ErrUnsupportedOperation = errors.New("manager: operation not supported by backend")
)
