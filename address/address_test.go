package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAddressString(t *testing.T) {
	assert.Equal(t, "f01001", NewID(1001).String())
	assert.Equal(t, "f00", NewID(0).String())
}

func TestIDAddressRoundTrip(t *testing.T) {
	a := NewID(1001)
	parsed, err := NewFromString(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	id, err := parsed.ActorID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), id)
}

func TestParseActorAddress(t *testing.T) {
	// Known-good f2 address with a valid checksum.
	a, err := NewFromString("f2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwbq")
	require.NoError(t, err)
	assert.Equal(t, Actor, a.Protocol())
	assert.Equal(t, "bdb211d3f9ec80cf1c5dfdef650a6245019fb89d", hex.EncodeToString(a.Payload()))
	assert.Equal(t, "f2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwbq", a.String())
}

func TestParseWrongNetworkPrefix(t *testing.T) {
	_, err := NewFromString("t2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwbq")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	assert.Contains(t, err.Error(), "network")
}

func TestParseBadChecksum(t *testing.T) {
	// Flip the last character of a valid f2 address.
	_, err := NewFromString("f2xwzbdu7z5sam6hc57xxwkctciuaz7oe5omipwba")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidChecksum)
}

func TestDelegatedRoundTrip(t *testing.T) {
	sub, err := hex.DecodeString("2e87774fe9e002d7afe7bf83158dbf7ab2797ba4bcab4c6561f8b5d335b8d161")
	require.NoError(t, err)

	a, err := NewDelegated(20, sub)
	require.NoError(t, err)
	assert.Equal(t, Delegated, a.Protocol())
	assert.Equal(t, "f420ff2dxot7j4abnpl7hx6brldn7pkzhs65exsvuyzlb7c25gnny2fqtl4mwbe", a.String())

	parsed, err := NewFromString(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	ns, gotSub, err := parsed.DelegatedParts()
	require.NoError(t, err)
	assert.Equal(t, uint64(20), ns)
	assert.Equal(t, sub, gotSub)
}

func TestDelegatedSubaddressBounds(t *testing.T) {
	_, err := NewDelegated(20, nil)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = NewDelegated(20, make([]byte, MaxDelegatedSubaddressLen+1))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "f", "fx", "f9abc", "f0notanumber", "f2!!!"} {
		_, err := NewFromString(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestUndef(t *testing.T) {
	assert.True(t, Undef.IsUndef())
	assert.False(t, NewID(0).IsUndef())
	assert.Equal(t, "<empty>", Undef.String())
}

func TestTextMarshaling(t *testing.T) {
	a := NewID(42)
	text, err := a.MarshalText()
	require.NoError(t, err)

	var back Address
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, a, back)

	_, err = Undef.MarshalText()
	assert.Error(t, err)
}
