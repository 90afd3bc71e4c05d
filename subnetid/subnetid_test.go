package subnetid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libsubnet-go/address"
)

func mustParse(t *testing.T, id string) SubnetID {
	t.Helper()
	s, err := Parse(id)
	require.NoError(t, err)
	return s
}

func TestParseAccountRoot(t *testing.T) {
	s := mustParse(t, "/r123")
	assert.Equal(t, AccountChain, s.RootNetworkType())
	assert.Equal(t, uint64(123), s.RootID())
	assert.True(t, s.IsRoot())
}

func TestParseUtxoRoot(t *testing.T) {
	s := mustParse(t, "/b1")
	assert.Equal(t, UtxoChain, s.RootNetworkType())
	assert.Equal(t, uint64(1), s.RootID())
}

func TestParseRejectsUtxoNetworkZero(t *testing.T) {
	_, err := Parse("/b0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestParseRejectsBadPrefix(t *testing.T) {
	for _, id := range []string{"", "r123", "/x123", "123"} {
		_, err := Parse(id)
		assert.ErrorIs(t, err, ErrMalformedID, "input %q", id)
	}
}

func TestParseRejectsBadChildAddress(t *testing.T) {
	// `t` network prefix addresses are not part of the grammar.
	_, err := Parse("/r31415926/t2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwbq")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedID)
	assert.Contains(t, err.Error(), "invalid child address")
	assert.Contains(t, err.Error(), "t2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwbq")
	assert.Contains(t, err.Error(), "network")
}

func TestStringRoundTrip(t *testing.T) {
	s := New(123, []address.Address{address.NewID(1001)})
	assert.Equal(t, "/r123/f01001", s.String())

	parsed := mustParse(t, s.String())
	assert.True(t, s.Equal(parsed))

	root := NewRoot(123)
	assert.Equal(t, "/r123", root.String())
	assert.True(t, root.Equal(mustParse(t, "/r123")))
}

func TestUtxoRootedSubnet(t *testing.T) {
	chainID := "2e87774fe9e002d7afe7bf83158dbf7ab2797ba4bcab4c6561f8b5d335b8d161"
	s, err := NewUtxoRooted(1, chainID)
	require.NoError(t, err)
	assert.Equal(t, UtxoChain, s.RootNetworkType())
	assert.Equal(t, uint64(1), s.RootID())
	require.Len(t, s.Children(), 1)

	str := s.String()
	assert.True(t, len(str) > 3 && str[:3] == "/b1")

	parsed := mustParse(t, str)
	assert.True(t, s.Equal(parsed))
}

func TestUtxoRootedRejectsBadInput(t *testing.T) {
	_, err := NewUtxoRooted(0, "ff")
	assert.ErrorIs(t, err, ErrMalformedID)

	_, err = NewUtxoRooted(1, "not-hex")
	assert.ErrorIs(t, err, ErrMalformedID)
}

func TestChainID(t *testing.T) {
	s := New(123, []address.Address{address.NewID(1001)})
	assert.Equal(t, uint64(1011873294913613), s.ChainID())

	root, ok := s.Parent()
	require.True(t, ok)
	assert.Equal(t, uint64(123), root.ChainID())

	// Deterministic: same canonical string, same chain id.
	assert.Equal(t, s.ChainID(), mustParse(t, "/r123/f01001").ChainID())
}

func TestSubnetActor(t *testing.T) {
	s := New(123, []address.Address{address.NewID(1001), address.NewID(1002)})
	assert.Equal(t, address.NewID(1002), s.SubnetActor())
	assert.Equal(t, address.NewID(0), NewRoot(123).SubnetActor())
}

func TestParent(t *testing.T) {
	s := mustParse(t, "/r123/f01/f02")
	p, ok := s.Parent()
	require.True(t, ok)
	assert.Equal(t, "/r123/f01", p.String())

	_, ok = NewRoot(123).Parent()
	assert.False(t, ok)
}

func TestNewFromParent(t *testing.T) {
	parent := mustParse(t, "/r123/f01")
	child := NewFromParent(parent, address.NewID(2))
	assert.Equal(t, "/r123/f01/f02", child.String())
	// The parent value is untouched.
	assert.Equal(t, "/r123/f01", parent.String())
}

func TestCommonParent(t *testing.T) {
	cases := []struct {
		a, b, want string
		index      int
	}{
		{"/r123/f01", "/r123/f01/f02", "/r123/f01", 1},
		{"/r123/f01/f02/f03", "/r123/f01/f02", "/r123/f01/f02", 2},
		{"/r123/f01/f03/f04", "/r123/f02/f03/f04", "/r123", 0},
		{"/r123/f01/f03/f04", "/r123/f01/f03/f04/f05", "/r123/f01/f03/f04", 3},
		{"/r123/f01/f03/f04", "/r123/f01/f03/f04", "/r123/f01/f03/f04", 3},
	}
	for _, tc := range cases {
		idx, prefix, ok := mustParse(t, tc.a).CommonParent(mustParse(t, tc.b))
		require.True(t, ok, "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.index, idx, "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.want, prefix.String(), "%s vs %s", tc.a, tc.b)
	}
}

func TestCommonParentDifferentRoots(t *testing.T) {
	_, _, ok := mustParse(t, "/r122/f01").CommonParent(mustParse(t, "/r123/f01/f02"))
	assert.False(t, ok)

	// Equal root values under different ecosystems share no ancestor either.
	utxo, err := NewUtxoRooted(123, "ff")
	require.NoError(t, err)
	_, _, ok = mustParse(t, "/r123/f01").CommonParent(utxo)
	assert.False(t, ok)
}

func TestDown(t *testing.T) {
	cases := []struct {
		a, b string
		want string // empty means not defined
	}{
		{"/r123/f01/f02/f03", "/r123/f01", "/r123/f01/f02"},
		{"/r123/f01/f02/f03", "/r123/f01/f02", "/r123/f01/f02/f03"},
		{"/r123/f01/f03/f04", "/r123/f01/f03", "/r123/f01/f03/f04"},
		{"/r123", "/r123/f01", ""},
		{"/r123/f01", "/r123/f01", ""},
		{"/r123/f02/f03", "/r123/f01/f03/f04", ""},
	}
	for _, tc := range cases {
		got, ok := mustParse(t, tc.a).Down(mustParse(t, tc.b))
		if tc.want == "" {
			assert.False(t, ok, "down(%s, %s)", tc.a, tc.b)
			continue
		}
		require.True(t, ok, "down(%s, %s)", tc.a, tc.b)
		assert.Equal(t, tc.want, got.String(), "down(%s, %s)", tc.a, tc.b)
	}
}

func TestUp(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{"/r123/f01/f02/f03", "/r123/f01", "/r123"},
		{"/r123/f01/f02/f03", "/r123/f01/f02", "/r123/f01"},
		{"/r123/f01/f02/f03", "/r123/f01/f02/f03", "/r123/f01/f02"},
	}
	for _, tc := range cases {
		got, err := mustParse(t, tc.a).Up(mustParse(t, tc.b))
		require.NoError(t, err, "up(%s, %s)", tc.a, tc.b)
		assert.Equal(t, tc.want, got.String(), "up(%s, %s)", tc.a, tc.b)
	}
}

func TestUpErrors(t *testing.T) {
	// Shallower than the reference path.
	_, err := mustParse(t, "/r123").Up(mustParse(t, "/r123/f01"))
	assert.ErrorIs(t, err, ErrNoCommonAncestor)

	// No shared root.
	_, err = mustParse(t, "/r122/f01").Up(mustParse(t, "/r123/f01"))
	assert.ErrorIs(t, err, ErrNoCommonAncestor)

	// Paths that meet only at the root: nothing exists above it.
	_, err = mustParse(t, "/r123/f02/f03").Up(mustParse(t, "/r123/f01"))
	assert.ErrorIs(t, err, ErrAboveRoot)
}

func TestUndefined(t *testing.T) {
	assert.True(t, Undefined().IsUndefined())
	assert.True(t, SubnetID{}.IsUndefined())
	assert.False(t, NewRoot(1).IsUndefined())
	assert.Equal(t, "/r0", Undefined().String())
}

func TestNetworkTypes(t *testing.T) {
	utxo, err := NewUtxoRooted(1, "ff")
	require.NoError(t, err)

	// The L2 below a UTXO root runs an account chain; its parent is UTXO.
	assert.Equal(t, AccountChain, utxo.NetworkType())
	pt, ok := utxo.ParentNetworkType()
	require.True(t, ok)
	assert.Equal(t, UtxoChain, pt)

	root := NewRoot(123)
	assert.Equal(t, AccountChain, root.NetworkType())
	_, ok = root.ParentNetworkType()
	assert.False(t, ok)

	deep := mustParse(t, "/r123/f01/f02")
	pt, ok = deep.ParentNetworkType()
	require.True(t, ok)
	assert.Equal(t, AccountChain, pt)
}

func TestTextMarshaling(t *testing.T) {
	s := mustParse(t, "/r123/f01001")
	text, err := s.MarshalText()
	require.NoError(t, err)

	var back SubnetID
	require.NoError(t, back.UnmarshalText(text))
	assert.True(t, s.Equal(back))
}
