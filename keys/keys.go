// Package keys provides validator key helpers for UTXO-rooted subnets.
// Validator identity on those chains is a 32-byte x-only public key, which
// drops the parity tag, so every generated key is constrained to even
// parity: the x-only form then round-trips unambiguously.
package keys

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

const (
	// XOnlyKeyLen is the length of an x-only public key.
	XOnlyKeyLen = 32

	// evenParityTag is the compressed-key prefix of an even-Y point.
	evenParityTag = 0x02
)

// GeneratePrivateKey returns a fresh secp256k1 private key whose public
// point has even parity. Roughly half of all keys qualify, so generation
// retries until one does.
func GeneratePrivateKey() (*ec.PrivateKey, error) {
	for {
		priv, err := ec.NewPrivateKey()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		if priv.PubKey().Compressed()[0] == evenParityTag {
			return priv, nil
		}
	}
}

// ParsePrivateKey decodes a 32-byte scalar and requires its public point
// to have even parity.
func ParsePrivateKey(b []byte) (*ec.PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: private key must be 32 bytes, got %d", ErrInvalidKey, len(b))
	}
	priv, _ := ec.PrivateKeyFromBytes(b)
	if priv.PubKey().Compressed()[0] != evenParityTag {
		return nil, fmt.Errorf("%w: use the negated scalar", ErrOddParity)
	}
	return priv, nil
}

// XOnlyPublicKey returns the 32-byte x-only public key of an even-parity
// private key.
func XOnlyPublicKey(priv *ec.PrivateKey) []byte {
	compressed := priv.PubKey().Compressed()
	out := make([]byte, XOnlyKeyLen)
	copy(out, compressed[1:])
	return out
}

// ValidateXOnlyPublicKey checks that b is 32 bytes and names the X
// coordinate of a point on the curve (interpreted with even parity).
func ValidateXOnlyPublicKey(b []byte) error {
	if len(b) != XOnlyKeyLen {
		return fmt.Errorf("%w: x-only key must be %d bytes, got %d", ErrInvalidKey, XOnlyKeyLen, len(b))
	}
	compressed := make([]byte, 0, XOnlyKeyLen+1)
	compressed = append(compressed, evenParityTag)
	compressed = append(compressed, b...)
	if _, err := ec.PublicKeyFromBytes(compressed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return nil
}
