package keys

import "errors"

var (
	// ErrInvalidKey indicates key material that does not decode to a valid
	// secp256k1 point or scalar.
	ErrInvalidKey = errors.New("keys: invalid key material")

	// ErrOddParity indicates a key whose public point has an odd Y
	// coordinate where an even-parity key is required.
	ErrOddParity = errors.New("keys: public key has odd parity")
)
