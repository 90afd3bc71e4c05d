package subnetid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitfsorg/libsubnet-go/address"
)

// Well-known CAIP-2 namespaces recognized for backend dispatch.
const (
	// NamespaceAccount is the namespace of account-model chains (EIP-155).
	NamespaceAccount = "eip155"
	// NamespaceUtxo is the namespace of UTXO-model chains (BIP-122).
	NamespaceUtxo = "bip122"
)

// ChainRef is a CAIP-2 style chain reference: a namespace naming a
// blockchain ecosystem and a reference naming one chain within it.
type ChainRef struct {
	Namespace string
	Reference string
}

// String returns the "namespace:reference" form.
func (r ChainRef) String() string { return r.Namespace + ":" + r.Reference }

// UniversalSubnetID is an ecosystem-agnostic subnet identifier. It mirrors
// SubnetID structurally, but the root is a CAIP-2 chain reference and the
// children are opaque strings, so it can name subnets under ecosystems a
// SubnetID cannot express.
type UniversalSubnetID struct {
	root     ChainRef
	children []string
}

// NewUniversal returns a UniversalSubnetID from explicit parts.
func NewUniversal(root ChainRef, children []string) UniversalSubnetID {
	return UniversalSubnetID{root: root, children: cloneStrings(children)}
}

// NewUniversalRoot returns the root identifier for a chain reference.
func NewUniversalRoot(root ChainRef) UniversalSubnetID {
	return UniversalSubnetID{root: root}
}

// NewUniversalFromParent returns the child identifier below parent.
func NewUniversalFromParent(parent UniversalSubnetID, child string) UniversalSubnetID {
	children := make([]string, len(parent.children)+1)
	copy(children, parent.children)
	children[len(parent.children)] = child
	return UniversalSubnetID{root: parent.root, children: children}
}

// Root returns the root chain reference.
func (u UniversalSubnetID) Root() ChainRef { return u.root }

// Children returns a copy of the child path.
func (u UniversalSubnetID) Children() []string { return cloneStrings(u.children) }

// IsRoot reports whether the identifier names the root itself.
func (u UniversalSubnetID) IsRoot() bool { return len(u.children) == 0 }

// Parent returns the parent identifier; false at the root.
func (u UniversalSubnetID) Parent() (UniversalSubnetID, bool) {
	if len(u.children) == 0 {
		return UniversalSubnetID{}, false
	}
	return UniversalSubnetID{root: u.root, children: cloneStrings(u.children[:len(u.children)-1])}, true
}

// RootNetworkType classifies the root ecosystem from its namespace. The
// second return is false for namespaces with no known classification;
// callers must treat that as "cannot dispatch", not as a default.
func (u UniversalSubnetID) RootNetworkType() (NetworkType, bool) {
	switch u.root.Namespace {
	case NamespaceAccount:
		return AccountChain, true
	case NamespaceUtxo:
		return UtxoChain, true
	default:
		return 0, false
	}
}

// NetworkType classifies the subnet itself: the root type at the root,
// account-model at every nested level.
func (u UniversalSubnetID) NetworkType() (NetworkType, bool) {
	if len(u.children) == 0 {
		return u.RootNetworkType()
	}
	return AccountChain, true
}

// ParentNetworkType classifies the parent subnet; false at the root.
func (u UniversalSubnetID) ParentNetworkType() (NetworkType, bool) {
	switch len(u.children) {
	case 0:
		return 0, false
	case 1:
		return u.RootNetworkType()
	default:
		return AccountChain, true
	}
}

// ToSubnetID converts to the concrete SubnetID form. Conversion succeeds
// only for the account namespace with a numeric reference and children
// that parse as addresses; the error names the field that failed.
func (u UniversalSubnetID) ToSubnetID() (SubnetID, error) {
	if u.root.Namespace != NamespaceAccount {
		return SubnetID{}, fmt.Errorf("%w: namespace %q of %s cannot be converted, only %q",
			ErrUnsupportedConversion, u.root.Namespace, u, NamespaceAccount)
	}
	rootID, err := strconv.ParseUint(u.root.Reference, 10, 64)
	if err != nil {
		return SubnetID{}, fmt.Errorf("%w: root reference %q of %s is not an unsigned integer",
			ErrUnsupportedConversion, u.root.Reference, u)
	}
	children := make([]address.Address, 0, len(u.children))
	for _, child := range u.children {
		addr, err := address.NewFromString(child)
		if err != nil {
			return SubnetID{}, fmt.Errorf("%w: child %q of %s is not a valid address: %v",
				ErrUnsupportedConversion, child, u, err)
		}
		children = append(children, addr)
	}
	return New(rootID, children), nil
}

// FromSubnetID converts a SubnetID to its universal form. The conversion
// always succeeds and always produces the account namespace.
func FromSubnetID(s SubnetID) UniversalSubnetID {
	children := make([]string, 0, len(s.children))
	for _, c := range s.children {
		children = append(children, c.String())
	}
	return UniversalSubnetID{
		root:     ChainRef{Namespace: NamespaceAccount, Reference: strconv.FormatUint(s.root, 10)},
		children: children,
	}
}

// String returns the canonical form: "/namespace:reference" followed by
// "/<child>" per child.
func (u UniversalSubnetID) String() string {
	var b strings.Builder
	b.WriteByte('/')
	b.WriteString(u.root.Namespace)
	b.WriteByte(':')
	b.WriteString(u.root.Reference)
	for _, c := range u.children {
		b.WriteByte('/')
		b.WriteString(c)
	}
	return b.String()
}

// ParseUniversal is the exact inverse of UniversalSubnetID.String.
func ParseUniversal(id string) (UniversalSubnetID, error) {
	if !strings.HasPrefix(id, "/") {
		return UniversalSubnetID{}, fmt.Errorf("%w: %q must start with '/'", ErrMalformedID, id)
	}
	segments := strings.Split(id, "/")[1:]
	if len(segments) == 0 || segments[0] == "" {
		return UniversalSubnetID{}, fmt.Errorf("%w: %q is missing a chain reference", ErrMalformedID, id)
	}
	parts := strings.Split(segments[0], ":")
	if len(parts) != 2 {
		return UniversalSubnetID{}, fmt.Errorf("%w: %q root must be namespace:reference", ErrMalformedID, id)
	}
	return UniversalSubnetID{
		root:     ChainRef{Namespace: parts[0], Reference: parts[1]},
		children: cloneStrings(segments[1:]),
	}, nil
}

// Equal reports whether two universal identifiers are identical.
func (u UniversalSubnetID) Equal(other UniversalSubnetID) bool {
	if u.root != other.root || len(u.children) != len(other.children) {
		return false
	}
	for i := range u.children {
		if u.children[i] != other.children[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (u UniversalSubnetID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UniversalSubnetID) UnmarshalText(text []byte) error {
	parsed, err := ParseUniversal(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
