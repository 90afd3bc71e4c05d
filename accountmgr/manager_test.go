package accountmgr

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

func accountSubnet(t *testing.T) subnetid.SubnetID {
	t.Helper()
	s, err := subnetid.Parse("/r123/f01001")
	require.NoError(t, err)
	return s
}

func TestCreateSubnet(t *testing.T) {
	parent, err := subnetid.Parse("/r123")
	require.NoError(t, err)

	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			assert.Equal(t, methodCreateSubnet, method)
			assert.Equal(t, address.NewID(100), from)
			created := args.(createSubnetArgs)
			assert.True(t, created.Params.Parent.Equal(parent))
			assert.Equal(t, uint64(4), created.Params.MinValidators)
			*result.(*createSubnetResult) = createSubnetResult{Actor: "f01001"}
			return nil
		},
	}

	actor, err := NewManager(backend).CreateSubnet(context.Background(), address.NewID(100), manager.AccountConstructParams{
		Parent:            parent,
		MinValidators:     4,
		MinValidatorStake: big.NewInt(1_000_000),
		PermissionMode:    manager.Collateral,
	})
	require.NoError(t, err)
	assert.Equal(t, address.NewID(1001), actor)
}

func TestCreateSubnetRejectsUtxoParams(t *testing.T) {
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	_, err := NewManager(backend).CreateSubnet(context.Background(), address.NewID(1), manager.UtxoConstructParams{})
	assert.ErrorIs(t, err, manager.ErrEcosystemMismatch)
}

func TestCreateSubnetRejectsUtxoParent(t *testing.T) {
	utxoRoot, err := subnetid.NewUtxoRooted(1, "ff")
	require.NoError(t, err)
	root, ok := utxoRoot.Parent()
	require.True(t, ok)

	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	_, err = NewManager(backend).CreateSubnet(context.Background(), address.NewID(1), manager.AccountConstructParams{Parent: root})
	assert.ErrorIs(t, err, manager.ErrEcosystemMismatch)
}

func TestJoinSubnet(t *testing.T) {
	subnet := accountSubnet(t)
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			assert.Equal(t, methodJoinSubnet, method)
			join := args.(joinSubnetArgs)
			assert.True(t, join.Subnet.Equal(subnet))
			assert.Equal(t, int64(5000), join.Collateral.Int64())
			*result.(*epochResult) = epochResult{Epoch: 321}
			return nil
		},
	}

	epoch, err := NewManager(backend).JoinSubnet(context.Background(), subnet, address.NewID(7), manager.AccountJoinParams{
		Collateral: big.NewInt(5000),
		PublicKey:  []byte{0x02, 0x03},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(321), epoch)
}

func TestJoinSubnetRejectsUtxoParams(t *testing.T) {
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	_, err := NewManager(backend).JoinSubnet(context.Background(), accountSubnet(t), address.NewID(7), manager.UtxoJoinParams{})
	assert.ErrorIs(t, err, manager.ErrEcosystemMismatch)
}

func TestFundDispatch(t *testing.T) {
	subnet := accountSubnet(t)
	var methods []string
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			methods = append(methods, method)
			transfer := args.(transferArgs)
			assert.Equal(t, "f0200", transfer.To)
			assert.Equal(t, int64(77), transfer.Amount.Int64())
			if result != nil {
				*result.(*epochResult) = epochResult{Epoch: 9}
			}
			return nil
		},
	}
	m := NewManager(backend)
	ctx := context.Background()

	epoch, err := m.Fund(ctx, subnet, address.NewID(1), address.NewID(200), big.NewInt(77))
	require.NoError(t, err)
	assert.Equal(t, int64(9), epoch)

	_, err = m.FundWithToken(ctx, subnet, address.NewID(1), address.NewID(200), big.NewInt(77))
	require.NoError(t, err)

	_, err = m.Release(ctx, subnet, address.NewID(1), address.NewID(200), big.NewInt(77))
	require.NoError(t, err)

	assert.Equal(t, []string{methodFund, methodFundWithToken, methodRelease}, methods)
}

func TestFundRejectsUtxoSubnet(t *testing.T) {
	utxoSubnet, err := subnetid.NewUtxoRooted(1, "ff")
	require.NoError(t, err)

	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	_, err = NewManager(backend).Fund(context.Background(), utxoSubnet, address.NewID(1), address.NewID(2), big.NewInt(1))
	assert.ErrorIs(t, err, manager.ErrEcosystemMismatch)
}

func TestSetFederatedPowerLengthMismatch(t *testing.T) {
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	_, err := NewManager(backend).SetFederatedPower(context.Background(), address.NewID(1), accountSubnet(t),
		[]address.Address{address.NewID(2)}, nil, []*big.Int{big.NewInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same length")
}

func TestWalletOpsDelegate(t *testing.T) {
	backend := &MockGatewayBackend{
		BalanceFn: func(ctx context.Context, addr address.Address) (*big.Int, error) {
			assert.Equal(t, address.NewID(42), addr)
			return big.NewInt(123456), nil
		},
		TransferFn: func(ctx context.Context, from, to address.Address, amount *big.Int) error {
			assert.Equal(t, address.NewID(1), from)
			assert.Equal(t, address.NewID(2), to)
			return nil
		},
		ChainIDFn:   func(ctx context.Context) (uint64, error) { return 123, nil },
		CommitSHAFn: func(ctx context.Context) (string, error) { return "abc123", nil },
	}
	m := NewManager(backend)
	ctx := context.Background()

	balance, err := m.WalletBalance(ctx, address.NewID(42))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), balance.Int64())

	require.NoError(t, m.SendValue(ctx, address.NewID(1), address.NewID(2), big.NewInt(5)))

	chainID, err := m.GetChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), chainID)

	sha, err := m.GetCommitSHA(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sha)
}

func TestSubmitCheckpoint(t *testing.T) {
	bundle := checkpoint.Bundle{
		Checkpoint:  checkpoint.BottomUpCheckpoint{Subnet: accountSubnet(t), Height: 900},
		Signatures:  []checkpoint.Signature{{0x01}},
		Signatories: []address.Address{address.NewID(5)},
	}
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			assert.Equal(t, methodSubmitCheckpoint, method)
			submitted := args.(submitCheckpointArgs)
			assert.Equal(t, int64(900), submitted.Bundle.Checkpoint.Height)
			*result.(*epochResult) = epochResult{Epoch: 901}
			return nil
		},
	}
	epoch, err := NewManager(backend).SubmitCheckpoint(context.Background(), address.NewID(5), bundle)
	require.NoError(t, err)
	assert.Equal(t, int64(901), epoch)
}

func TestSubmitCheckpointRejectsSignatureMismatch(t *testing.T) {
	backend := &MockGatewayBackend{
		InvokeFn: func(ctx context.Context, from address.Address, method string, args, result any) error {
			t.Error("no contract call expected")
			return nil
		},
	}
	bundle := checkpoint.Bundle{
		Signatures:  []checkpoint.Signature{{0x01}, {0x02}},
		Signatories: []address.Address{address.NewID(5)},
	}
	_, err := NewManager(backend).SubmitCheckpoint(context.Background(), address.NewID(5), bundle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signatories")
}

func TestCheckpointBundleAt(t *testing.T) {
	backend := &MockGatewayBackend{
		QueryFn: func(ctx context.Context, method string, args, result any) error {
			assert.Equal(t, methodCheckpointBundleAt, method)
			if args.(heightArgs).Height == 900 {
				*result.(*bundleAtResult) = bundleAtResult{
					Exists: true,
					Bundle: checkpoint.Bundle{Checkpoint: checkpoint.BottomUpCheckpoint{Height: 900}},
				}
			}
			return nil
		},
	}
	m := NewManager(backend)

	bundle, err := m.CheckpointBundleAt(context.Background(), 900)
	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.Equal(t, int64(900), bundle.Checkpoint.Height)

	// Not yet assembled: nil, no error.
	bundle, err = m.CheckpointBundleAt(context.Background(), 930)
	require.NoError(t, err)
	assert.Nil(t, bundle)
}

func TestBackendErrorsPropagate(t *testing.T) {
	backendErr := errors.New("execution reverted")
	backend := &MockGatewayBackend{
		QueryFn: func(ctx context.Context, method string, args, result any) error {
			return backendErr
		},
	}
	_, err := NewManager(backend).GetGenesisInfo(context.Background(), accountSubnet(t))
	assert.ErrorIs(t, err, backendErr)
}

func TestTopDownQueries(t *testing.T) {
	subnet := accountSubnet(t)
	backend := &MockGatewayBackend{
		QueryFn: func(ctx context.Context, method string, args, result any) error {
			switch method {
			case methodGenesisEpoch:
				*result.(*epochResult) = epochResult{Epoch: 100}
			case methodChainHead:
				*result.(*epochResult) = epochResult{Epoch: 2000}
			case methodParentFinality:
				*result.(*manager.ParentFinality) = manager.ParentFinality{Height: 1990}
			default:
				t.Errorf("unexpected method %s", method)
			}
			return nil
		},
	}
	m := NewManager(backend)
	ctx := context.Background()

	epoch, err := m.GenesisEpoch(ctx, subnet)
	require.NoError(t, err)
	assert.Equal(t, int64(100), epoch)

	head, err := m.ChainHeadHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), head)

	finality, err := m.LatestParentFinality(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1990), finality.Height)
}
