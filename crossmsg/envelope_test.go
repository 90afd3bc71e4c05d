package crossmsg

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

func testAddr(t *testing.T, subnet string, actor uint64) Addr {
	t.Helper()
	s, err := subnetid.Parse(subnet)
	require.NoError(t, err)
	return NewAddr(s, address.NewID(actor))
}

func TestNewEnvelope(t *testing.T) {
	from := testAddr(t, "/r123/f01", 100)
	to := testAddr(t, "/r123/f01/f02", 200)

	env, err := NewEnvelope(Transfer, from, to, big.NewInt(42), []byte{0xde, 0xad}, 7)
	require.NoError(t, err)
	assert.Equal(t, Transfer, env.Kind)
	assert.True(t, env.From.Equal(from))
	assert.True(t, env.To.Equal(to))
	assert.Equal(t, int64(42), env.Value.Int64())
	assert.Equal(t, []byte{0xde, 0xad}, env.Message)
	assert.Equal(t, uint64(7), env.Nonce)
}

func TestNewEnvelopeCopiesInputs(t *testing.T) {
	from := testAddr(t, "/r123/f01", 1)
	to := testAddr(t, "/r123/f02", 2)
	value := big.NewInt(10)
	msg := []byte{1, 2, 3}

	env, err := NewEnvelope(Call, from, to, value, msg, 0)
	require.NoError(t, err)

	value.SetInt64(999)
	msg[0] = 0xff
	assert.Equal(t, int64(10), env.Value.Int64())
	assert.Equal(t, byte(1), env.Message[0])
}

func TestNewEnvelopeNilValue(t *testing.T) {
	env, err := NewEnvelope(Transfer, testAddr(t, "/r1", 1), testAddr(t, "/r1/f02", 2), nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, env.Value.Sign())
}

func TestNewEnvelopeRejectsUndefinedEndpoints(t *testing.T) {
	ok := testAddr(t, "/r123/f01", 1)

	_, err := NewEnvelope(Transfer, Addr{}, ok, big.NewInt(1), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)

	_, err = NewEnvelope(Transfer, ok, Addr{Subnet: ok.Subnet}, big.NewInt(1), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
}

func TestNewEnvelopeRejectsNegativeValue(t *testing.T) {
	_, err := NewEnvelope(Transfer, testAddr(t, "/r1", 1), testAddr(t, "/r1/f02", 2), big.NewInt(-1), nil, 0)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestNewEnvelopeUtxoPrecision(t *testing.T) {
	utxoRoot, err := subnetid.NewUtxoRooted(1, "ff")
	require.NoError(t, err)
	root, ok := utxoRoot.Parent()
	require.True(t, ok)
	to := NewAddr(root, address.NewID(2))
	from := testAddr(t, "/r123/f01", 1)

	// Largest representable satoshi-style amount is fine.
	max := new(big.Int).SetUint64(^uint64(0))
	_, err = NewEnvelope(Transfer, from, to, max, nil, 0)
	require.NoError(t, err)

	// One above overflows the destination precision.
	over := new(big.Int).Add(max, big.NewInt(1))
	_, err = NewEnvelope(Transfer, from, to, over, nil, 0)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	// The same amount toward an account-model destination is accepted.
	_, err = NewEnvelope(Transfer, from, testAddr(t, "/r123/f02", 2), over, nil, 0)
	assert.NoError(t, err)
}
