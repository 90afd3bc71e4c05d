// Package crossmsg defines the message model exchanged between parent and
// child subnets: a globally routable address (subnet identifier plus leaf
// address) and the typed envelope carried top-down or bottom-up.
//
// The model stores already-normalized amounts. No unit conversion happens
// between ecosystems with different base-unit scales; the caller building
// an envelope converts first.
package crossmsg

import (
	"fmt"
	"math"
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// Kind discriminates the payload semantics of an envelope.
type Kind int

const (
	// Transfer moves value with no contract invocation.
	Transfer Kind = iota
	// Call invokes a contract method, carrying the call data in Message.
	Call
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Transfer:
		return "transfer"
	case Call:
		return "call"
	default:
		return "unknown"
	}
}

// Addr is a globally routable address: a subnet identifier paired with a
// leaf address inside that subnet. It serves as both the source and the
// destination of an envelope.
type Addr struct {
	Subnet subnetid.SubnetID
	Raw    address.Address
}

// NewAddr returns the routable address for a leaf address inside a subnet.
func NewAddr(subnet subnetid.SubnetID, raw address.Address) Addr {
	return Addr{Subnet: subnet, Raw: raw}
}

// String returns "subnet:address".
func (a Addr) String() string {
	return a.Subnet.String() + ":" + a.Raw.String()
}

// Equal reports whether two routable addresses are identical.
func (a Addr) Equal(other Addr) bool {
	return a.Subnet.Equal(other.Subnet) && a.Raw == other.Raw
}

// Envelope is one cross-subnet message. Nonce imposes strict per-origin
// ordering; Value is a non-negative amount in the destination chain's base
// unit.
type Envelope struct {
	Kind    Kind
	From    Addr
	To      Addr
	Value   *big.Int
	Message []byte
	Nonce   uint64
}

// maxUtxoValue is the largest base-unit amount a UTXO-model destination can
// represent (unsigned 64-bit satoshi-style accounting).
var maxUtxoValue = new(big.Int).SetUint64(math.MaxUint64)

// NewEnvelope builds a validated envelope. Both endpoints must carry a
// defined subnet and address, and value must be non-negative and
// representable in the destination ecosystem's token precision.
func NewEnvelope(kind Kind, from, to Addr, value *big.Int, message []byte, nonce uint64) (Envelope, error) {
	if from.Subnet.IsUndefined() || from.Raw.IsUndef() {
		return Envelope{}, fmt.Errorf("%w: from %s", ErrInvalidEndpoint, from)
	}
	if to.Subnet.IsUndefined() || to.Raw.IsUndef() {
		return Envelope{}, fmt.Errorf("%w: to %s", ErrInvalidEndpoint, to)
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return Envelope{}, fmt.Errorf("%w: negative value %s", ErrValueOutOfRange, value)
	}
	if to.Subnet.NetworkType() == subnetid.UtxoChain && value.Cmp(maxUtxoValue) > 0 {
		return Envelope{}, fmt.Errorf("%w: %s exceeds the utxo 64-bit base-unit ceiling", ErrValueOutOfRange, value)
	}
	msg := make([]byte, len(message))
	copy(msg, message)
	return Envelope{
		Kind:    kind,
		From:    from,
		To:      to,
		Value:   new(big.Int).Set(value),
		Message: msg,
		Nonce:   nonce,
	}, nil
}
