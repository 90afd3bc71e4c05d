package manager

import (
	"context"
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// MockSubnetManager is a test double for SubnetManager.
// All function fields must be set before the corresponding method is called.
type MockSubnetManager struct {
	CreateSubnetFn              func(ctx context.Context, from address.Address, params ConstructParams) (address.Address, error)
	JoinSubnetFn                func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, params JoinParams) (int64, error)
	PreFundFn                   func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error
	FundFn                      func(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)
	FundWithTokenFn             func(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)
	ApproveTokenFn              func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error
	StakeFn                     func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error
	UnstakeFn                   func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error
	LeaveSubnetFn               func(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error
	KillSubnetFn                func(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error
	ReleaseFn                   func(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)
	PropagateFn                 func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, postboxKey []byte) error
	ClaimCollateralFn           func(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error
	ListChildSubnetsFn          func(ctx context.Context, gateway address.Address) ([]SubnetInfo, error)
	GetGenesisInfoFn            func(ctx context.Context, subnet subnetid.SubnetID) (SubnetGenesisInfo, error)
	GetValidatorInfoFn          func(ctx context.Context, subnet subnetid.SubnetID, validator address.Address) (checkpoint.ValidatorInfo, error)
	ListValidatorsFn            func(ctx context.Context, subnet subnetid.SubnetID) ([]checkpoint.ValidatorInfo, error)
	SetFederatedPowerFn         func(ctx context.Context, from address.Address, subnet subnetid.SubnetID, validators []address.Address, publicKeys [][]byte, power []*big.Int) (int64, error)
	GetSubnetSupplySourceFn     func(ctx context.Context, subnet subnetid.SubnetID) (Asset, error)
	GetSubnetCollateralSourceFn func(ctx context.Context, subnet subnetid.SubnetID) (Asset, error)
	WalletBalanceFn             func(ctx context.Context, addr address.Address) (*big.Int, error)
	SendValueFn                 func(ctx context.Context, from, to address.Address, amount *big.Int) error
	GetChainIDFn                func(ctx context.Context) (uint64, error)
	GetCommitSHAFn              func(ctx context.Context) (string, error)
	AddBootstrapFn              func(ctx context.Context, subnet subnetid.SubnetID, from address.Address, endpoint string) error
	ListBootstrapNodesFn        func(ctx context.Context, subnet subnetid.SubnetID) ([]string, error)
}

var _ SubnetManager = (*MockSubnetManager)(nil)

func (m *MockSubnetManager) CreateSubnet(ctx context.Context, from address.Address, params ConstructParams) (address.Address, error) {
	return m.CreateSubnetFn(ctx, from, params)
}
func (m *MockSubnetManager) JoinSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address, params JoinParams) (int64, error) {
	return m.JoinSubnetFn(ctx, subnet, from, params)
}
func (m *MockSubnetManager) PreFund(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return m.PreFundFn(ctx, subnet, from, amount)
}
func (m *MockSubnetManager) Fund(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.FundFn(ctx, subnet, from, to, amount)
}
func (m *MockSubnetManager) FundWithToken(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.FundWithTokenFn(ctx, subnet, from, to, amount)
}
func (m *MockSubnetManager) ApproveToken(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return m.ApproveTokenFn(ctx, subnet, from, amount)
}
func (m *MockSubnetManager) Stake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return m.StakeFn(ctx, subnet, from, amount)
}
func (m *MockSubnetManager) Unstake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return m.UnstakeFn(ctx, subnet, from, amount)
}
func (m *MockSubnetManager) LeaveSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return m.LeaveSubnetFn(ctx, subnet, from)
}
func (m *MockSubnetManager) KillSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return m.KillSubnetFn(ctx, subnet, from)
}
func (m *MockSubnetManager) Release(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.ReleaseFn(ctx, subnet, from, to, amount)
}
func (m *MockSubnetManager) Propagate(ctx context.Context, subnet subnetid.SubnetID, from address.Address, postboxKey []byte) error {
	return m.PropagateFn(ctx, subnet, from, postboxKey)
}
func (m *MockSubnetManager) ClaimCollateral(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return m.ClaimCollateralFn(ctx, subnet, from)
}
func (m *MockSubnetManager) ListChildSubnets(ctx context.Context, gateway address.Address) ([]SubnetInfo, error) {
	return m.ListChildSubnetsFn(ctx, gateway)
}
func (m *MockSubnetManager) GetGenesisInfo(ctx context.Context, subnet subnetid.SubnetID) (SubnetGenesisInfo, error) {
	return m.GetGenesisInfoFn(ctx, subnet)
}
func (m *MockSubnetManager) GetValidatorInfo(ctx context.Context, subnet subnetid.SubnetID, validator address.Address) (checkpoint.ValidatorInfo, error) {
	return m.GetValidatorInfoFn(ctx, subnet, validator)
}
func (m *MockSubnetManager) ListValidators(ctx context.Context, subnet subnetid.SubnetID) ([]checkpoint.ValidatorInfo, error) {
	return m.ListValidatorsFn(ctx, subnet)
}
func (m *MockSubnetManager) SetFederatedPower(ctx context.Context, from address.Address, subnet subnetid.SubnetID, validators []address.Address, publicKeys [][]byte, power []*big.Int) (int64, error) {
	return m.SetFederatedPowerFn(ctx, from, subnet, validators, publicKeys, power)
}
func (m *MockSubnetManager) GetSubnetSupplySource(ctx context.Context, subnet subnetid.SubnetID) (Asset, error) {
	return m.GetSubnetSupplySourceFn(ctx, subnet)
}
func (m *MockSubnetManager) GetSubnetCollateralSource(ctx context.Context, subnet subnetid.SubnetID) (Asset, error) {
	return m.GetSubnetCollateralSourceFn(ctx, subnet)
}
func (m *MockSubnetManager) WalletBalance(ctx context.Context, addr address.Address) (*big.Int, error) {
	return m.WalletBalanceFn(ctx, addr)
}
func (m *MockSubnetManager) SendValue(ctx context.Context, from, to address.Address, amount *big.Int) error {
	return m.SendValueFn(ctx, from, to, amount)
}
func (m *MockSubnetManager) GetChainID(ctx context.Context) (uint64, error) {
	return m.GetChainIDFn(ctx)
}
func (m *MockSubnetManager) GetCommitSHA(ctx context.Context) (string, error) {
	return m.GetCommitSHAFn(ctx)
}
func (m *MockSubnetManager) AddBootstrap(ctx context.Context, subnet subnetid.SubnetID, from address.Address, endpoint string) error {
	return m.AddBootstrapFn(ctx, subnet, from, endpoint)
}
func (m *MockSubnetManager) ListBootstrapNodes(ctx context.Context, subnet subnetid.SubnetID) ([]string, error) {
	return m.ListBootstrapNodesFn(ctx, subnet)
}

// MockRelayer is a test double for BottomUpCheckpointRelayer.
type MockRelayer struct {
	SubmitCheckpointFn             func(ctx context.Context, submitter address.Address, bundle checkpoint.Bundle) (int64, error)
	CheckpointBundleAtFn           func(ctx context.Context, height int64) (*checkpoint.Bundle, error)
	QuorumReachedEventsFn          func(ctx context.Context, height int64) ([]checkpoint.QuorumReachedEvent, error)
	CheckpointPeriodFn             func(ctx context.Context, subnet subnetid.SubnetID) (int64, error)
	LastBottomUpCheckpointHeightFn func(ctx context.Context, subnet subnetid.SubnetID) (int64, error)
	CurrentEpochFn                 func(ctx context.Context) (int64, error)
}

var _ BottomUpCheckpointRelayer = (*MockRelayer)(nil)

func (m *MockRelayer) SubmitCheckpoint(ctx context.Context, submitter address.Address, bundle checkpoint.Bundle) (int64, error) {
	return m.SubmitCheckpointFn(ctx, submitter, bundle)
}
func (m *MockRelayer) CheckpointBundleAt(ctx context.Context, height int64) (*checkpoint.Bundle, error) {
	return m.CheckpointBundleAtFn(ctx, height)
}
func (m *MockRelayer) QuorumReachedEvents(ctx context.Context, height int64) ([]checkpoint.QuorumReachedEvent, error) {
	return m.QuorumReachedEventsFn(ctx, height)
}
func (m *MockRelayer) CheckpointPeriod(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	return m.CheckpointPeriodFn(ctx, subnet)
}
func (m *MockRelayer) LastBottomUpCheckpointHeight(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	return m.LastBottomUpCheckpointHeightFn(ctx, subnet)
}
func (m *MockRelayer) CurrentEpoch(ctx context.Context) (int64, error) {
	return m.CurrentEpochFn(ctx)
}

// MockFinalityQuery is a test double for TopDownFinalityQuery.
type MockFinalityQuery struct {
	GenesisEpochFn          func(ctx context.Context, subnet subnetid.SubnetID) (int64, error)
	ChainHeadHeightFn       func(ctx context.Context) (int64, error)
	GetTopDownMsgsFn        func(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (TopDownMsgs, error)
	GetBlockHashFn          func(ctx context.Context, height int64) (GetBlockHashResult, error)
	GetValidatorChangesetFn func(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (ValidatorChangeSet, error)
	LatestParentFinalityFn  func(ctx context.Context) (ParentFinality, error)
}

var _ TopDownFinalityQuery = (*MockFinalityQuery)(nil)

func (m *MockFinalityQuery) GenesisEpoch(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	return m.GenesisEpochFn(ctx, subnet)
}
func (m *MockFinalityQuery) ChainHeadHeight(ctx context.Context) (int64, error) {
	return m.ChainHeadHeightFn(ctx)
}
func (m *MockFinalityQuery) GetTopDownMsgs(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (TopDownMsgs, error) {
	return m.GetTopDownMsgsFn(ctx, subnet, epoch)
}
func (m *MockFinalityQuery) GetBlockHash(ctx context.Context, height int64) (GetBlockHashResult, error) {
	return m.GetBlockHashFn(ctx, height)
}
func (m *MockFinalityQuery) GetValidatorChangeset(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (ValidatorChangeSet, error) {
	return m.GetValidatorChangesetFn(ctx, subnet, epoch)
}
func (m *MockFinalityQuery) LatestParentFinality(ctx context.Context) (ParentFinality, error) {
	return m.LatestParentFinalityFn(ctx)
}
