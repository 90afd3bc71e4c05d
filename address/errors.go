package address

import "errors"

var (
	// ErrUnknownNetwork indicates the address string does not start with the
	// expected network prefix.
	ErrUnknownNetwork = errors.New("address: unknown address network")

	// ErrUnknownProtocol indicates an unrecognized address protocol indicator.
	ErrUnknownProtocol = errors.New("address: unknown address protocol")

	// ErrInvalidPayload indicates the address payload is malformed for its protocol.
	ErrInvalidPayload = errors.New("address: invalid address payload")

	// ErrInvalidLength indicates the address string or payload has a bad length.
	ErrInvalidLength = errors.New("address: invalid address length")

	// ErrInvalidChecksum indicates the embedded checksum does not match the payload.
	ErrInvalidChecksum = errors.New("address: invalid address checksum")
)
