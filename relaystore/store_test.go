package relaystore

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "relay", "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testSubnet(t *testing.T, id string) subnetid.SubnetID {
	t.Helper()
	s, err := subnetid.Parse(id)
	require.NoError(t, err)
	return s
}

func testBundle(t *testing.T, subnet subnetid.SubnetID, height int64) checkpoint.Bundle {
	t.Helper()
	blockHash := chainhash.DoubleHashH([]byte{byte(height)})
	return checkpoint.Bundle{
		Checkpoint: checkpoint.BottomUpCheckpoint{
			Subnet:                  subnet,
			Height:                  height,
			BlockHash:               blockHash,
			NextConfigurationNumber: 7,
			MsgsRoot:                chainhash.DoubleHashH(blockHash[:]),
		},
		Signatures:  []checkpoint.Signature{[]byte{0xde, 0xad}},
		Signatories: []address.Address{address.NewID(1001)},
	}
}

func TestBundleRoundTrip(t *testing.T) {
	store := openTestStore(t)
	subnet := testSubnet(t, "/r123/f01001")
	bundle := testBundle(t, subnet, 100)

	require.NoError(t, store.PutBundle(bundle))

	got, err := store.GetBundle(subnet, 100)
	require.NoError(t, err)
	assert.Equal(t, bundle, *got)
}

func TestPutBundleRejectsDuplicate(t *testing.T) {
	store := openTestStore(t)
	bundle := testBundle(t, testSubnet(t, "/r123/f01001"), 100)

	require.NoError(t, store.PutBundle(bundle))

	err := store.PutBundle(bundle)
	require.ErrorIs(t, err, ErrDuplicateBundle)
	assert.Contains(t, err.Error(), "height 100")
}

func TestGetBundleNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetBundle(testSubnet(t, "/r123/f01001"), 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastBundleHeight(t *testing.T) {
	store := openTestStore(t)
	subnet := testSubnet(t, "/r123/f01001")
	other := testSubnet(t, "/r123/f02000")

	for _, height := range []int64{300, 100, 200} {
		require.NoError(t, store.PutBundle(testBundle(t, subnet, height)))
	}
	require.NoError(t, store.PutBundle(testBundle(t, other, 900)))

	height, err := store.LastBundleHeight(subnet)
	require.NoError(t, err)
	assert.Equal(t, int64(300), height)
}

func TestLastBundleHeightEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LastBundleHeight(testSubnet(t, "/r123/f01001"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuorumEventsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	subnet := testSubnet(t, "/r123/f01001")
	events := []checkpoint.QuorumReachedEvent{{
		Height:      100,
		Commitment:  chainhash.DoubleHashH([]byte("commitment")),
		TotalWeight: big.NewInt(42),
	}}

	require.NoError(t, store.PutQuorumEvents(subnet, 100, events))

	got, err := store.QuorumEvents(subnet, 100)
	require.NoError(t, err)
	assert.Equal(t, events, got)

	_, err = store.QuorumEvents(subnet, 200)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuorumEventsReplaced(t *testing.T) {
	store := openTestStore(t)
	subnet := testSubnet(t, "/r123/f01001")

	first := []checkpoint.QuorumReachedEvent{{Height: 100, TotalWeight: big.NewInt(1)}}
	second := []checkpoint.QuorumReachedEvent{{Height: 100, TotalWeight: big.NewInt(2)}}

	require.NoError(t, store.PutQuorumEvents(subnet, 100, first))
	require.NoError(t, store.PutQuorumEvents(subnet, 100, second))

	got, err := store.QuorumEvents(subnet, 100)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestUtxoRootedSubnetKeys(t *testing.T) {
	store := openTestStore(t)
	subnet, err := subnetid.NewUtxoRooted(1, "2e87774fe9e002d7afe7bf83158dbf7ab2797ba4")
	require.NoError(t, err)

	require.NoError(t, store.PutBundle(testBundle(t, subnet, 55)))

	got, err := store.GetBundle(subnet, 55)
	require.NoError(t, err)
	assert.True(t, subnet.Equal(got.Checkpoint.Subnet))
}
