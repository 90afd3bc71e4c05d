package crossmsg

import "errors"

var (
	// ErrInvalidEndpoint indicates an envelope endpoint has an undefined
	// subnet or address.
	ErrInvalidEndpoint = errors.New("crossmsg: invalid envelope endpoint")

	// ErrValueOutOfRange indicates an envelope value is negative or does not
	// fit the destination chain's token precision.
	ErrValueOutOfRange = errors.New("crossmsg: value out of range for destination")
)
