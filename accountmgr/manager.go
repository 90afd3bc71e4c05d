package accountmgr

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// Manager drives the gateway and registry contracts of an account-model
// chain through a GatewayBackend. It validates parameter tags before
// dispatching and never coerces the other ecosystem's parameters.
type Manager struct {
	backend GatewayBackend
}

// NewManager returns a manager over a contract-call backend.
func NewManager(backend GatewayBackend) *Manager { return &Manager{backend: backend} }

var (
	_ manager.SubnetManager             = (*Manager)(nil)
	_ manager.BottomUpCheckpointRelayer = (*Manager)(nil)
	_ manager.TopDownFinalityQuery      = (*Manager)(nil)
	_ manager.ValidatorRewarder         = (*Manager)(nil)
)

// requireAccountSubnet rejects subnets that are not anchored below an
// account-model parent.
func requireAccountSubnet(subnet subnetid.SubnetID) error {
	pt, ok := subnet.ParentNetworkType()
	if !ok || pt != subnetid.AccountChain {
		return fmt.Errorf("%w: %s is not anchored on an account chain", manager.ErrEcosystemMismatch, subnet)
	}
	return nil
}

func (m *Manager) CreateSubnet(ctx context.Context, from address.Address, params manager.ConstructParams) (address.Address, error) {
	p, ok := params.(manager.AccountConstructParams)
	if !ok {
		return address.Undef, fmt.Errorf("%w: CreateSubnet requires account construct params", manager.ErrEcosystemMismatch)
	}
	if p.Parent.NetworkType() != subnetid.AccountChain {
		return address.Undef, fmt.Errorf("%w: parent %s is not an account chain", manager.ErrEcosystemMismatch, p.Parent)
	}
	var result createSubnetResult
	if err := m.backend.Invoke(ctx, from, methodCreateSubnet, createSubnetArgs{Params: p}, &result); err != nil {
		return address.Undef, err
	}
	actor, err := address.NewFromString(result.Actor)
	if err != nil {
		return address.Undef, fmt.Errorf("accountmgr: backend returned an invalid subnet actor %q: %w", result.Actor, err)
	}
	return actor, nil
}

func (m *Manager) JoinSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address, params manager.JoinParams) (int64, error) {
	p, ok := params.(manager.AccountJoinParams)
	if !ok {
		return 0, fmt.Errorf("%w: JoinSubnet requires account join params", manager.ErrEcosystemMismatch)
	}
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	var result epochResult
	args := joinSubnetArgs{Subnet: subnet, Collateral: p.Collateral, PublicKey: p.PublicKey}
	if err := m.backend.Invoke(ctx, from, methodJoinSubnet, args, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) PreFund(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodPreFund, amountArgs{Subnet: subnet, Amount: amount}, nil)
}

func (m *Manager) Fund(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.transferCall(ctx, methodFund, subnet, from, to, amount)
}

func (m *Manager) FundWithToken(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.transferCall(ctx, methodFundWithToken, subnet, from, to, amount)
}

func (m *Manager) Release(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return m.transferCall(ctx, methodRelease, subnet, from, to, amount)
}

func (m *Manager) transferCall(ctx context.Context, method string, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	var result epochResult
	args := transferArgs{Subnet: subnet, To: to.String(), Amount: amount}
	if err := m.backend.Invoke(ctx, from, method, args, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) ApproveToken(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodApproveToken, amountArgs{Subnet: subnet, Amount: amount}, nil)
}

func (m *Manager) Stake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodStake, amountArgs{Subnet: subnet, Amount: amount}, nil)
}

func (m *Manager) Unstake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodUnstake, amountArgs{Subnet: subnet, Amount: amount}, nil)
}

func (m *Manager) LeaveSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodLeave, subnetArgs{Subnet: subnet}, nil)
}

func (m *Manager) KillSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodKill, subnetArgs{Subnet: subnet}, nil)
}

func (m *Manager) Propagate(ctx context.Context, subnet subnetid.SubnetID, from address.Address, postboxKey []byte) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodPropagate, propagateArgs{Subnet: subnet, PostboxKey: postboxKey}, nil)
}

func (m *Manager) ClaimCollateral(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodClaimCollateral, subnetArgs{Subnet: subnet}, nil)
}

func (m *Manager) ListChildSubnets(ctx context.Context, gateway address.Address) ([]manager.SubnetInfo, error) {
	var out []manager.SubnetInfo
	if err := m.backend.Query(ctx, methodListChildSubnets, listChildSubnetsArgs{Gateway: gateway.String()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) GetGenesisInfo(ctx context.Context, subnet subnetid.SubnetID) (manager.SubnetGenesisInfo, error) {
	var out manager.SubnetGenesisInfo
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodGenesisInfo, subnetArgs{Subnet: subnet}, &out)
	return out, err
}

func (m *Manager) GetValidatorInfo(ctx context.Context, subnet subnetid.SubnetID, validator address.Address) (checkpoint.ValidatorInfo, error) {
	var out checkpoint.ValidatorInfo
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodValidatorInfo, validatorArgs{Subnet: subnet, Validator: validator.String()}, &out)
	return out, err
}

func (m *Manager) ListValidators(ctx context.Context, subnet subnetid.SubnetID) ([]checkpoint.ValidatorInfo, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return nil, err
	}
	var out []checkpoint.ValidatorInfo
	if err := m.backend.Query(ctx, methodListValidators, subnetArgs{Subnet: subnet}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) SetFederatedPower(ctx context.Context, from address.Address, subnet subnetid.SubnetID, validators []address.Address, publicKeys [][]byte, power []*big.Int) (int64, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	if len(validators) != len(publicKeys) || len(validators) != len(power) {
		return 0, fmt.Errorf("accountmgr: validators, public keys, and power must be the same length")
	}
	addrs := make([]string, len(validators))
	for i, v := range validators {
		addrs[i] = v.String()
	}
	var result epochResult
	args := federatedPowerArgs{Subnet: subnet, Validators: addrs, PublicKeys: publicKeys, Power: power}
	if err := m.backend.Invoke(ctx, from, methodSetFederatedPower, args, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) GetSubnetSupplySource(ctx context.Context, subnet subnetid.SubnetID) (manager.Asset, error) {
	var out manager.Asset
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodSupplySource, subnetArgs{Subnet: subnet}, &out)
	return out, err
}

func (m *Manager) GetSubnetCollateralSource(ctx context.Context, subnet subnetid.SubnetID) (manager.Asset, error) {
	var out manager.Asset
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodCollateralSource, subnetArgs{Subnet: subnet}, &out)
	return out, err
}

func (m *Manager) WalletBalance(ctx context.Context, addr address.Address) (*big.Int, error) {
	return m.backend.Balance(ctx, addr)
}

func (m *Manager) SendValue(ctx context.Context, from, to address.Address, amount *big.Int) error {
	return m.backend.Transfer(ctx, from, to, amount)
}

func (m *Manager) GetChainID(ctx context.Context) (uint64, error) {
	return m.backend.ChainID(ctx)
}

func (m *Manager) GetCommitSHA(ctx context.Context) (string, error) {
	return m.backend.CommitSHA(ctx)
}

func (m *Manager) AddBootstrap(ctx context.Context, subnet subnetid.SubnetID, from address.Address, endpoint string) error {
	if err := requireAccountSubnet(subnet); err != nil {
		return err
	}
	return m.backend.Invoke(ctx, from, methodAddBootstrap, bootstrapArgs{Subnet: subnet, Endpoint: endpoint}, nil)
}

func (m *Manager) ListBootstrapNodes(ctx context.Context, subnet subnetid.SubnetID) ([]string, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return nil, err
	}
	var out []string
	if err := m.backend.Query(ctx, methodListBootstrapNodes, subnetArgs{Subnet: subnet}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) SubmitCheckpoint(ctx context.Context, submitter address.Address, bundle checkpoint.Bundle) (int64, error) {
	if len(bundle.Signatures) != len(bundle.Signatories) {
		return 0, fmt.Errorf("accountmgr: bundle has %d signatures for %d signatories",
			len(bundle.Signatures), len(bundle.Signatories))
	}
	var result epochResult
	if err := m.backend.Invoke(ctx, submitter, methodSubmitCheckpoint, submitCheckpointArgs{Bundle: bundle}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) CheckpointBundleAt(ctx context.Context, height int64) (*checkpoint.Bundle, error) {
	var result bundleAtResult
	if err := m.backend.Query(ctx, methodCheckpointBundleAt, heightArgs{Height: height}, &result); err != nil {
		return nil, err
	}
	if !result.Exists {
		return nil, nil
	}
	return &result.Bundle, nil
}

func (m *Manager) QuorumReachedEvents(ctx context.Context, height int64) ([]checkpoint.QuorumReachedEvent, error) {
	var out []checkpoint.QuorumReachedEvent
	if err := m.backend.Query(ctx, methodQuorumEvents, heightArgs{Height: height}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) CheckpointPeriod(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	var result epochResult
	if err := m.backend.Query(ctx, methodCheckpointPeriod, subnetArgs{Subnet: subnet}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) LastBottomUpCheckpointHeight(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	var result epochResult
	if err := m.backend.Query(ctx, methodLastCheckpointHeight, subnetArgs{Subnet: subnet}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) CurrentEpoch(ctx context.Context) (int64, error) {
	var result epochResult
	if err := m.backend.Query(ctx, methodCurrentEpoch, struct{}{}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) GenesisEpoch(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	if err := requireAccountSubnet(subnet); err != nil {
		return 0, err
	}
	var result epochResult
	if err := m.backend.Query(ctx, methodGenesisEpoch, subnetArgs{Subnet: subnet}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) ChainHeadHeight(ctx context.Context) (int64, error) {
	var result epochResult
	if err := m.backend.Query(ctx, methodChainHead, struct{}{}, &result); err != nil {
		return 0, err
	}
	return result.Epoch, nil
}

func (m *Manager) GetTopDownMsgs(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (manager.TopDownMsgs, error) {
	var out manager.TopDownMsgs
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodTopDownMsgs, epochQueryArgs{Subnet: subnet, Epoch: epoch}, &out)
	return out, err
}

func (m *Manager) GetBlockHash(ctx context.Context, height int64) (manager.GetBlockHashResult, error) {
	var out manager.GetBlockHashResult
	err := m.backend.Query(ctx, methodBlockHash, heightArgs{Height: height}, &out)
	return out, err
}

func (m *Manager) GetValidatorChangeset(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (manager.ValidatorChangeSet, error) {
	var out manager.ValidatorChangeSet
	if err := requireAccountSubnet(subnet); err != nil {
		return out, err
	}
	err := m.backend.Query(ctx, methodValidatorChangeset, epochQueryArgs{Subnet: subnet, Epoch: epoch}, &out)
	return out, err
}

func (m *Manager) LatestParentFinality(ctx context.Context) (manager.ParentFinality, error) {
	var out manager.ParentFinality
	err := m.backend.Query(ctx, methodParentFinality, struct{}{}, &out)
	return out, err
}

func (m *Manager) QueryRewardClaims(ctx context.Context, validator address.Address, rewardOrigin subnetid.SubnetID) ([]manager.RewardClaim, error) {
	var out []manager.RewardClaim
	args := rewardClaimArgs{Validator: validator.String(), RewardOrigin: rewardOrigin}
	if err := m.backend.Query(ctx, methodRewardClaims, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Manager) QueryValidatorRewards(ctx context.Context, validator address.Address, rewardOrigin subnetid.SubnetID) (*big.Int, error) {
	var out big.Int
	args := rewardClaimArgs{Validator: validator.String(), RewardOrigin: rewardOrigin}
	if err := m.backend.Query(ctx, methodValidatorRewards, args, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *Manager) BatchSubnetClaim(ctx context.Context, submitter address.Address, claimSubnet, rewardOrigin subnetid.SubnetID, claims []manager.RewardClaim) error {
	if err := requireAccountSubnet(claimSubnet); err != nil {
		return err
	}
	args := batchClaimArgs{ClaimSubnet: claimSubnet, RewardOrigin: rewardOrigin, Claims: claims}
	return m.backend.Invoke(ctx, submitter, methodBatchClaim, args, nil)
}
