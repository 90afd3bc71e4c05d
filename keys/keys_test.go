package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrivateKey(t *testing.T) {
	for i := 0; i < 8; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(t, err)
		assert.Equal(t, byte(0x02), priv.PubKey().Compressed()[0])
	}
}

func TestXOnlyPublicKeyRoundTrip(t *testing.T) {
	priv, err := GeneratePrivateKey()
	require.NoError(t, err)

	xonly := XOnlyPublicKey(priv)
	require.Len(t, xonly, XOnlyKeyLen)
	assert.Equal(t, priv.PubKey().Compressed()[1:], xonly)

	require.NoError(t, ValidateXOnlyPublicKey(xonly))
}

func TestParsePrivateKey(t *testing.T) {
	priv, err := GeneratePrivateKey()
	require.NoError(t, err)

	parsed, err := ParsePrivateKey(priv.Serialize())
	require.NoError(t, err)
	assert.Equal(t, priv.Serialize(), parsed.Serialize())
}

func TestParsePrivateKeyRejectsBadLength(t *testing.T) {
	_, err := ParsePrivateKey([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidateXOnlyPublicKeyRejectsBadInput(t *testing.T) {
	// Wrong length.
	err := ValidateXOnlyPublicKey(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidKey)

	// Not an X coordinate on the curve.
	bad := make([]byte, XOnlyKeyLen)
	for i := range bad {
		bad[i] = 0xff
	}
	err = ValidateXOnlyPublicKey(bad)
	assert.ErrorIs(t, err, ErrInvalidKey)
}
