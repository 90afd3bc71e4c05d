// Package address implements the textual address format shared by all
// subnets below an account-model root: ID addresses (f0...), hash
// addresses (f1/f2/f3) and delegated namespaced addresses (f4...).
//
// An address is a protocol indicator followed by a protocol-specific
// payload. Hash and delegated addresses carry a 4-byte blake2b checksum
// over protocol byte plus payload, base32-encoded with a fixed alphabet.
package address

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Protocol identifies how an address payload is interpreted.
type Protocol byte

const (
	// ID is a numeric actor identifier (f0).
	ID Protocol = iota
	// Secp256k1 is a 20-byte hash of a secp256k1 public key (f1).
	Secp256k1
	// Actor is a 20-byte hash identifying a non-account actor (f2).
	Actor
	// BLS is a 48-byte BLS public key (f3).
	BLS
	// Delegated is a namespaced address owned by a foreign runtime (f4).
	Delegated
)

const (
	// NetworkPrefix is the textual prefix of every address.
	NetworkPrefix = "f"

	// ChecksumLen is the length of the embedded blake2b checksum.
	ChecksumLen = 4

	// HashPayloadLen is the payload length of secp256k1 and actor addresses.
	HashPayloadLen = 20

	// BLSPayloadLen is the payload length of BLS addresses.
	BLSPayloadLen = 48

	// MaxDelegatedSubaddressLen bounds the raw subaddress of a delegated address.
	MaxDelegatedSubaddressLen = 54
)

// addrEncoding is the fixed base32 alphabet used by the textual form.
var addrEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Address is an immutable, comparable address value. The zero value is the
// undefined address, which is not valid for any operation.
//
// Internally the first byte is the protocol and the rest is the payload
// (uvarint actor id for ID, raw hash for f1/f2/f3, uvarint namespace plus
// subaddress for f4).
type Address struct {
	str string
}

// Undef is the undefined address (zero value).
var Undef = Address{}

// checksum computes the 4-byte blake2b checksum over protocol byte + payload.
func checksum(data []byte) []byte {
	h, _ := blake2b.New(ChecksumLen, nil) // only fails for size 0 or >64
	h.Write(data)
	return h.Sum(nil)
}

// NewID returns the ID address for the given actor identifier.
func NewID(id uint64) Address {
	buf := make([]byte, 1+binary.MaxVarintLen64)
	buf[0] = byte(ID)
	n := binary.PutUvarint(buf[1:], id)
	return Address{str: string(buf[:1+n])}
}

// NewSecp256k1 returns the f1 address for a 20-byte public key hash.
func NewSecp256k1(payload []byte) (Address, error) {
	return newHashAddress(Secp256k1, payload, HashPayloadLen)
}

// NewActor returns the f2 address for a 20-byte actor hash.
func NewActor(payload []byte) (Address, error) {
	return newHashAddress(Actor, payload, HashPayloadLen)
}

// NewBLS returns the f3 address for a 48-byte BLS public key.
func NewBLS(payload []byte) (Address, error) {
	return newHashAddress(BLS, payload, BLSPayloadLen)
}

func newHashAddress(proto Protocol, payload []byte, want int) (Address, error) {
	if len(payload) != want {
		return Undef, fmt.Errorf("%w: protocol %d payload must be %d bytes, got %d",
			ErrInvalidLength, proto, want, len(payload))
	}
	return Address{str: string(append([]byte{byte(proto)}, payload...))}, nil
}

// NewDelegated returns the f4 address for a namespace and raw subaddress.
func NewDelegated(namespace uint64, subaddr []byte) (Address, error) {
	if len(subaddr) == 0 || len(subaddr) > MaxDelegatedSubaddressLen {
		return Undef, fmt.Errorf("%w: delegated subaddress must be 1..%d bytes, got %d",
			ErrInvalidLength, MaxDelegatedSubaddressLen, len(subaddr))
	}
	buf := make([]byte, 1+binary.MaxVarintLen64+len(subaddr))
	buf[0] = byte(Delegated)
	n := binary.PutUvarint(buf[1:], namespace)
	copy(buf[1+n:], subaddr)
	return Address{str: string(buf[:1+n+len(subaddr)])}, nil
}

// Protocol returns the address protocol. Undef reports 255.
func (a Address) Protocol() Protocol {
	if a.str == "" {
		return Protocol(255)
	}
	return Protocol(a.str[0])
}

// Payload returns a copy of the protocol-specific payload bytes.
func (a Address) Payload() []byte {
	if a.str == "" {
		return nil
	}
	return []byte(a.str[1:])
}

// IsUndef reports whether the address is the undefined sentinel.
func (a Address) IsUndef() bool { return a.str == "" }

// ActorID returns the numeric identifier of an ID address.
func (a Address) ActorID() (uint64, error) {
	if a.Protocol() != ID {
		return 0, fmt.Errorf("%w: not an ID address", ErrUnknownProtocol)
	}
	id, n := binary.Uvarint([]byte(a.str[1:]))
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad uvarint actor id", ErrInvalidPayload)
	}
	return id, nil
}

// DelegatedParts returns the namespace and subaddress of a delegated address.
func (a Address) DelegatedParts() (uint64, []byte, error) {
	if a.Protocol() != Delegated {
		return 0, nil, fmt.Errorf("%w: not a delegated address", ErrUnknownProtocol)
	}
	payload := []byte(a.str[1:])
	ns, n := binary.Uvarint(payload)
	if n <= 0 || n >= len(payload) {
		return 0, nil, fmt.Errorf("%w: bad delegated namespace", ErrInvalidPayload)
	}
	sub := make([]byte, len(payload)-n)
	copy(sub, payload[n:])
	return ns, sub, nil
}

// String returns the canonical textual form of the address. The undefined
// address renders as "<empty>".
func (a Address) String() string {
	if a.str == "" {
		return "<empty>"
	}
	proto := Protocol(a.str[0])
	payload := []byte(a.str[1:])
	switch proto {
	case ID:
		id, n := binary.Uvarint(payload)
		if n <= 0 {
			return "<invalid>"
		}
		return NetworkPrefix + "0" + strconv.FormatUint(id, 10)
	case Secp256k1, Actor, BLS:
		cksm := checksum([]byte(a.str))
		return NetworkPrefix + strconv.Itoa(int(proto)) +
			addrEncoding.EncodeToString(append(payload, cksm...))
	case Delegated:
		ns, n := binary.Uvarint(payload)
		if n <= 0 || n >= len(payload) {
			return "<invalid>"
		}
		cksm := checksum([]byte(a.str))
		return NetworkPrefix + "4" + strconv.FormatUint(ns, 10) + NetworkPrefix +
			addrEncoding.EncodeToString(append(payload[n:], cksm...))
	default:
		return "<invalid>"
	}
}

// NewFromString parses the canonical textual form of an address.
func NewFromString(s string) (Address, error) {
	if len(s) < 3 {
		return Undef, fmt.Errorf("%w: %q is too short", ErrInvalidLength, s)
	}
	if !strings.HasPrefix(s, NetworkPrefix) {
		return Undef, fmt.Errorf("%w: %q does not start with %q", ErrUnknownNetwork, s, NetworkPrefix)
	}
	switch s[1] {
	case '0':
		id, err := strconv.ParseUint(s[2:], 10, 64)
		if err != nil {
			return Undef, fmt.Errorf("%w: bad actor id in %q: %v", ErrInvalidPayload, s, err)
		}
		return NewID(id), nil
	case '1':
		return parseHashAddress(Secp256k1, s, HashPayloadLen)
	case '2':
		return parseHashAddress(Actor, s, HashPayloadLen)
	case '3':
		return parseHashAddress(BLS, s, BLSPayloadLen)
	case '4':
		return parseDelegated(s)
	default:
		return Undef, fmt.Errorf("%w: %q", ErrUnknownProtocol, s)
	}
}

func parseHashAddress(proto Protocol, s string, payloadLen int) (Address, error) {
	raw, err := addrEncoding.DecodeString(s[2:])
	if err != nil {
		return Undef, fmt.Errorf("%w: bad base32 in %q: %v", ErrInvalidPayload, s, err)
	}
	if len(raw) != payloadLen+ChecksumLen {
		return Undef, fmt.Errorf("%w: %q payload+checksum must be %d bytes, got %d",
			ErrInvalidLength, s, payloadLen+ChecksumLen, len(raw))
	}
	payload, cksm := raw[:payloadLen], raw[payloadLen:]
	if !bytes.Equal(checksum(append([]byte{byte(proto)}, payload...)), cksm) {
		return Undef, fmt.Errorf("%w: %q", ErrInvalidChecksum, s)
	}
	return newHashAddress(proto, payload, payloadLen)
}

func parseDelegated(s string) (Address, error) {
	// f4{namespace}f{base32(subaddr || checksum)}
	rest := s[2:]
	sep := strings.IndexByte(rest, 'f')
	if sep <= 0 {
		return Undef, fmt.Errorf("%w: delegated address %q missing namespace separator", ErrInvalidPayload, s)
	}
	ns, err := strconv.ParseUint(rest[:sep], 10, 64)
	if err != nil {
		return Undef, fmt.Errorf("%w: bad delegated namespace in %q: %v", ErrInvalidPayload, s, err)
	}
	raw, err := addrEncoding.DecodeString(rest[sep+1:])
	if err != nil {
		return Undef, fmt.Errorf("%w: bad base32 in %q: %v", ErrInvalidPayload, s, err)
	}
	if len(raw) <= ChecksumLen {
		return Undef, fmt.Errorf("%w: delegated address %q has no subaddress", ErrInvalidLength, s)
	}
	sub, cksm := raw[:len(raw)-ChecksumLen], raw[len(raw)-ChecksumLen:]
	addr, err := NewDelegated(ns, sub)
	if err != nil {
		return Undef, err
	}
	if !bytes.Equal(checksum([]byte(addr.str)), cksm) {
		return Undef, fmt.Errorf("%w: %q", ErrInvalidChecksum, s)
	}
	return addr, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	if a.str == "" {
		return nil, fmt.Errorf("%w: cannot marshal undefined address", ErrInvalidPayload)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := NewFromString(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// GobEncode implements gob.GobEncoder using the raw internal bytes, so
// the undefined address survives a round trip.
func (a Address) GobEncode() ([]byte, error) { return []byte(a.str), nil }

// GobDecode implements gob.GobDecoder.
func (a *Address) GobDecode(data []byte) error {
	a.str = string(data)
	return nil
}
