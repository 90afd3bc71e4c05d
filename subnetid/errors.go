package subnetid

import "errors"

var (
	// ErrMalformedID indicates a subnet identifier string does not match the
	// canonical grammar. The wrapped detail names the offending input.
	ErrMalformedID = errors.New("subnetid: malformed subnet id")

	// ErrUnsupportedConversion indicates a universal subnet id cannot be
	// represented as a SubnetID (or vice versa).
	ErrUnsupportedConversion = errors.New("subnetid: unsupported conversion")

	// ErrNoCommonAncestor indicates two subnet ids do not share a root.
	ErrNoCommonAncestor = errors.New("subnetid: no common ancestor")

	// ErrAboveRoot indicates a navigation step would move above the root of
	// the hierarchy.
	ErrAboveRoot = errors.New("subnetid: no subnet above the root")
)
