// Package subnetid implements hierarchical subnet identifiers for a
// tree-structured network of networks. A subnet is anchored under a root
// blockchain ecosystem (account-model or UTXO-model) and addressed by the
// ordered path of subnet actor addresses from the root down.
//
// Identifiers are immutable values: every navigation operation (Parent,
// Down, Up, CommonParent) copies a prefix of the path and returns a new
// value, never mutating in place.
package subnetid

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/bitfsorg/libsubnet-go/address"
)

// MaxChainID is the largest derivable numeric chain identifier, matching
// the ceiling used by account-model chains.
const MaxChainID uint64 = 4503599627370476

// UtxoAddressNamespace is the delegated-address namespace wrapping raw
// UTXO-chain subnet identifiers.
const UtxoAddressNamespace uint64 = 20

// NetworkType discriminates the root ecosystem of a subnet hierarchy.
type NetworkType int

const (
	// AccountChain is an account-model smart-contract root (serialized "/r").
	AccountChain NetworkType = iota
	// UtxoChain is a UTXO-model root (serialized "/b").
	UtxoChain
)

// String returns a human-readable name for the network type.
func (nt NetworkType) String() string {
	switch nt {
	case AccountChain:
		return "account"
	case UtxoChain:
		return "utxo"
	default:
		return "unknown"
	}
}

// SubnetID identifies one subnet in the hierarchy: the root network type,
// the root chain identifier, and the ordered path of subnet actor
// addresses from the immediate child of the root to this subnet.
//
// The zero value is the undefined sentinel (account root 0, no children).
type SubnetID struct {
	rootType NetworkType
	root     uint64
	children []address.Address
}

// New returns a SubnetID anchored under an account-model root.
func New(rootID uint64, children []address.Address) SubnetID {
	return SubnetID{rootType: AccountChain, root: rootID, children: cloneChildren(children)}
}

// NewRoot returns the root SubnetID for an account-model chain.
func NewRoot(rootID uint64) SubnetID {
	return SubnetID{rootType: AccountChain, root: rootID}
}

// NewUtxoRooted returns the SubnetID of a subnet directly below a
// UTXO-model root. networkID discriminates the UTXO network (1 = main,
// 2 = test, ...; 0 is invalid) and chainID is the hex-encoded raw
// chain-specific subnet identifier, wrapped in a delegated address.
//
// Deeper nesting below a UTXO root is reachable only via NewFromParent.
func NewUtxoRooted(networkID uint64, chainID string) (SubnetID, error) {
	if networkID == 0 {
		return SubnetID{}, fmt.Errorf("%w: 0 is not a valid utxo network id", ErrMalformedID)
	}
	raw, err := hex.DecodeString(chainID)
	if err != nil {
		return SubnetID{}, fmt.Errorf("%w: utxo subnet child %q is not valid hex: %v", ErrMalformedID, chainID, err)
	}
	child, err := address.NewDelegated(UtxoAddressNamespace, raw)
	if err != nil {
		return SubnetID{}, fmt.Errorf("%w: utxo subnet child %q: %v", ErrMalformedID, chainID, err)
	}
	return SubnetID{rootType: UtxoChain, root: networkID, children: []address.Address{child}}, nil
}

// NewFromParent returns the SubnetID of the child governed by actor below
// the given parent.
func NewFromParent(parent SubnetID, actor address.Address) SubnetID {
	children := make([]address.Address, len(parent.children)+1)
	copy(children, parent.children)
	children[len(parent.children)] = actor
	return SubnetID{rootType: parent.rootType, root: parent.root, children: children}
}

// Undefined returns the undefined sentinel identifier.
func Undefined() SubnetID { return SubnetID{} }

// IsUndefined reports whether the identifier is the undefined sentinel.
func (s SubnetID) IsUndefined() bool {
	return s.rootType == AccountChain && s.root == 0 && len(s.children) == 0
}

// RootNetworkType returns the ecosystem of the hierarchy's root.
func (s SubnetID) RootNetworkType() NetworkType { return s.rootType }

// NetworkType returns the ecosystem of this subnet itself: the root type
// at the root, and account-model for every nested level (all intermediate
// subnets run account-model chains).
func (s SubnetID) NetworkType() NetworkType {
	if len(s.children) == 0 {
		return s.rootType
	}
	return AccountChain
}

// ParentNetworkType returns the ecosystem of the parent subnet. The second
// return is false at the root, which has no parent.
func (s SubnetID) ParentNetworkType() (NetworkType, bool) {
	switch len(s.children) {
	case 0:
		return 0, false
	case 1:
		return s.rootType, true
	default:
		return AccountChain, true
	}
}

// RootID returns the chain identifier of the hierarchy's root.
func (s SubnetID) RootID() uint64 { return s.root }

// IsRoot reports whether this subnet is the hierarchy's root.
func (s SubnetID) IsRoot() bool { return len(s.children) == 0 }

// Children returns a copy of the actor address path from the root down.
func (s SubnetID) Children() []address.Address { return cloneChildren(s.children) }

// ChainID derives the numeric chain identifier of this subnet. The root
// returns its root id verbatim; every other subnet hashes its canonical
// string form with FNV-1a/64 reduced modulo MaxChainID. The derivation is
// deterministic across processes.
func (s SubnetID) ChainID() uint64 {
	if s.IsRoot() {
		return s.root
	}
	h := fnv.New64a()
	h.Write([]byte(s.String()))
	return h.Sum64() % MaxChainID
}

// SubnetActor returns the address of the actor governing this subnet in
// its parent, or the zero ID address at the root.
func (s SubnetID) SubnetActor() address.Address {
	if len(s.children) == 0 {
		return address.NewID(0)
	}
	return s.children[len(s.children)-1]
}

// Parent returns the parent identifier. The second return is false at the
// root.
func (s SubnetID) Parent() (SubnetID, bool) {
	if len(s.children) == 0 {
		return SubnetID{}, false
	}
	return s.truncate(len(s.children) - 1), true
}

// CommonParent computes the deepest common ancestor of s and other. It
// returns the length of the longest common child prefix and the ancestor
// itself. The second return is false when the two ids do not share a root
// (differing root value or root ecosystem). The common parent of an id
// with itself is the id, with the full path length.
func (s SubnetID) CommonParent(other SubnetID) (int, SubnetID, bool) {
	if s.root != other.root || s.rootType != other.rootType {
		return 0, SubnetID{}, false
	}
	common := 0
	for common < len(s.children) && common < len(other.children) &&
		s.children[common] == other.children[common] {
		common++
	}
	return common, s.truncate(common), true
}

// Down walks one step below from along the path toward s. It is defined
// only when s is strictly deeper than from; otherwise, or when the two ids
// share no root, the second return is false.
func (s SubnetID) Down(from SubnetID) (SubnetID, bool) {
	if len(s.children) <= len(from.children) {
		return SubnetID{}, false
	}
	common, _, ok := s.CommonParent(from)
	if !ok {
		return SubnetID{}, false
	}
	return s.truncate(common + 1), true
}

// Up walks one step above the deepest common ancestor of s and from,
// toward the root. It requires s to be at least as deep as from and both
// to share a root. When the common ancestor is the root itself there is
// nothing above it and ErrAboveRoot is returned.
func (s SubnetID) Up(from SubnetID) (SubnetID, error) {
	if len(s.children) < len(from.children) {
		return SubnetID{}, fmt.Errorf("%w: %s is shallower than %s", ErrNoCommonAncestor, s, from)
	}
	common, _, ok := s.CommonParent(from)
	if !ok {
		return SubnetID{}, fmt.Errorf("%w: %s and %s", ErrNoCommonAncestor, s, from)
	}
	if common == 0 {
		return SubnetID{}, fmt.Errorf("%w: common ancestor of %s and %s is the root", ErrAboveRoot, s, from)
	}
	return s.truncate(common - 1), nil
}

// Equal reports whether two identifiers name the same subnet: same root
// ecosystem, same root value, and the same ordered child path.
func (s SubnetID) Equal(other SubnetID) bool {
	if s.rootType != other.rootType || s.root != other.root || len(s.children) != len(other.children) {
		return false
	}
	for i := range s.children {
		if s.children[i] != other.children[i] {
			return false
		}
	}
	return true
}

// String returns the canonical form: "/r<root>" for account roots,
// "/b<root>" for UTXO roots, followed by "/<address>" per child.
func (s SubnetID) String() string {
	var b strings.Builder
	if s.rootType == UtxoChain {
		b.WriteString("/b")
	} else {
		b.WriteString("/r")
	}
	b.WriteString(strconv.FormatUint(s.root, 10))
	for _, c := range s.children {
		b.WriteByte('/')
		b.WriteString(c.String())
	}
	return b.String()
}

// Parse is the exact inverse of String.
func Parse(id string) (SubnetID, error) {
	var rootType NetworkType
	switch {
	case strings.HasPrefix(id, "/r"):
		rootType = AccountChain
	case strings.HasPrefix(id, "/b"):
		rootType = UtxoChain
	default:
		return SubnetID{}, fmt.Errorf("%w: %q must start with %q or %q", ErrMalformedID, id, "/r", "/b")
	}

	segments := strings.Split(id, "/")[1:]
	root, err := strconv.ParseUint(segments[0][1:], 10, 64)
	if err != nil {
		return SubnetID{}, fmt.Errorf("%w: %q has an invalid root id: %v", ErrMalformedID, id, err)
	}
	if rootType == UtxoChain && root == 0 {
		return SubnetID{}, fmt.Errorf("%w: %q has an invalid utxo network id", ErrMalformedID, id)
	}

	var children []address.Address
	for _, seg := range segments[1:] {
		addr, err := address.NewFromString(seg)
		if err != nil {
			return SubnetID{}, fmt.Errorf("%w: %q has an invalid child address %q: %v", ErrMalformedID, id, seg, err)
		}
		children = append(children, addr)
	}

	return SubnetID{rootType: rootType, root: root, children: children}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SubnetID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SubnetID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// GobEncode implements gob.GobEncoder via the canonical string form.
func (s SubnetID) GobEncode() ([]byte, error) { return s.MarshalText() }

// GobDecode implements gob.GobDecoder.
func (s *SubnetID) GobDecode(data []byte) error { return s.UnmarshalText(data) }

// truncate returns the identifier cut to the first n children.
func (s SubnetID) truncate(n int) SubnetID {
	return SubnetID{rootType: s.rootType, root: s.root, children: cloneChildren(s.children[:n])}
}

func cloneChildren(children []address.Address) []address.Address {
	if len(children) == 0 {
		return nil
	}
	out := make([]address.Address, len(children))
	copy(out, children)
	return out
}
