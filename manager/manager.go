// Package manager defines the capability interfaces implemented once per
// backend ecosystem: subnet lifecycle and query operations, bottom-up
// checkpoint relaying, top-down finality queries, and validator reward
// claims. Implementations normalize backend responses into the canonical
// data model before returning.
//
// A manager instance owns its transport exclusively and performs no
// internal locking or retries; concurrent callers use independent
// instances or serialize access externally. Every operation is a single
// network call that takes a context for cancellation.
package manager

import (
	"context"
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// SubnetManager exposes subnet lifecycle, funding, staking, and query
// operations over the canonical parameter/result model. Operations a
// backend cannot serve return ErrUnsupportedOperation; operations called
// with the other ecosystem's parameter tag return ErrEcosystemMismatch.
type SubnetManager interface {
	// CreateSubnet registers a new subnet below params.Parent and returns
	// the address of the actor governing it.
	CreateSubnet(ctx context.Context, from address.Address, params ConstructParams) (address.Address, error)

	// JoinSubnet stakes collateral and registers from as a validator.
	// It returns the parent epoch the join was included at.
	JoinSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address, params JoinParams) (int64, error)

	// PreFund injects genesis balance into a subnet that has not yet
	// bootstrapped.
	PreFund(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error

	// Fund moves value from the parent into an active subnet and returns
	// the parent epoch the fund was included at.
	Fund(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)

	// FundWithToken funds a subnet whose supply source is a token contract.
	FundWithToken(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)

	// ApproveToken approves the subnet's gateway to spend a token amount.
	ApproveToken(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error

	// Stake adds collateral for an existing validator.
	Stake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error

	// Unstake releases part of a validator's collateral.
	Unstake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error

	// LeaveSubnet withdraws the validator and its full collateral.
	LeaveSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error

	// KillSubnet retires an empty subnet.
	KillSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error

	// Release moves value from the subnet back up to the parent and
	// returns the child epoch the release was included at.
	Release(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error)

	// Propagate relays a postbox message identified by its key.
	Propagate(ctx context.Context, subnet subnetid.SubnetID, from address.Address, postboxKey []byte) error

	// ClaimCollateral withdraws collateral released after leaving.
	ClaimCollateral(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error

	// ListChildSubnets lists the subnets registered under the gateway.
	ListChildSubnets(ctx context.Context, gateway address.Address) ([]SubnetInfo, error)

	// GetGenesisInfo fetches the genesis state needed to bootstrap a
	// child node for the subnet.
	GetGenesisInfo(ctx context.Context, subnet subnetid.SubnetID) (SubnetGenesisInfo, error)

	// GetValidatorInfo reports one validator's membership.
	GetValidatorInfo(ctx context.Context, subnet subnetid.SubnetID, validator address.Address) (checkpoint.ValidatorInfo, error)

	// ListValidators lists the subnet's current validator set.
	ListValidators(ctx context.Context, subnet subnetid.SubnetID) ([]checkpoint.ValidatorInfo, error)

	// SetFederatedPower assigns validator power in federated subnets.
	// validators, publicKeys, and power are parallel slices.
	SetFederatedPower(ctx context.Context, from address.Address, subnet subnetid.SubnetID,
		validators []address.Address, publicKeys [][]byte, power []*big.Int) (int64, error)

	// GetSubnetSupplySource reports the asset funding the subnet's supply.
	GetSubnetSupplySource(ctx context.Context, subnet subnetid.SubnetID) (Asset, error)

	// GetSubnetCollateralSource reports the asset used as collateral.
	GetSubnetCollateralSource(ctx context.Context, subnet subnetid.SubnetID) (Asset, error)

	// WalletBalance reports the balance of an address on the backend chain.
	WalletBalance(ctx context.Context, addr address.Address) (*big.Int, error)

	// SendValue transfers value between two addresses on the same chain.
	SendValue(ctx context.Context, from, to address.Address, amount *big.Int) error

	// GetChainID reports the backend chain's numeric chain identifier.
	GetChainID(ctx context.Context) (uint64, error)

	// GetCommitSHA reports the source revision of the backend node.
	GetCommitSHA(ctx context.Context) (string, error)

	// AddBootstrap advertises a bootstrap endpoint for the subnet.
	AddBootstrap(ctx context.Context, subnet subnetid.SubnetID, from address.Address, endpoint string) error

	// ListBootstrapNodes lists the subnet's advertised bootstrap endpoints.
	ListBootstrapNodes(ctx context.Context, subnet subnetid.SubnetID) ([]string, error)
}

// BottomUpCheckpointRelayer submits and tracks bottom-up checkpoints on
// the parent chain.
type BottomUpCheckpointRelayer interface {
	// SubmitCheckpoint publishes a finalized checkpoint bundle to the
	// parent and returns the parent epoch it was included at.
	SubmitCheckpoint(ctx context.Context, submitter address.Address, bundle checkpoint.Bundle) (int64, error)

	// CheckpointBundleAt retrieves the bundle assembled for a height, or
	// nil when no bundle exists there yet.
	CheckpointBundleAt(ctx context.Context, height int64) (*checkpoint.Bundle, error)

	// QuorumReachedEvents retrieves the quorum certificate events emitted
	// at a height.
	QuorumReachedEvents(ctx context.Context, height int64) ([]checkpoint.QuorumReachedEvent, error)

	// CheckpointPeriod reports the subnet's checkpointing interval.
	CheckpointPeriod(ctx context.Context, subnet subnetid.SubnetID) (int64, error)

	// LastBottomUpCheckpointHeight reports the height of the last
	// checkpoint committed on the parent.
	LastBottomUpCheckpointHeight(ctx context.Context, subnet subnetid.SubnetID) (int64, error)

	// CurrentEpoch reports the chain head height of the relayed-to chain.
	CurrentEpoch(ctx context.Context) (int64, error)
}

// TopDownFinalityQuery reads parent chain data a child needs to apply
// top-down state: cross messages, validator changes, and finality.
type TopDownFinalityQuery interface {
	// GenesisEpoch reports the parent height the subnet was created at.
	GenesisEpoch(ctx context.Context, subnet subnetid.SubnetID) (int64, error)

	// ChainHeadHeight reports the parent chain head.
	ChainHeadHeight(ctx context.Context) (int64, error)

	// GetTopDownMsgs fetches the envelopes destined for the subnet at a
	// parent epoch, with the block hash they were observed in.
	GetTopDownMsgs(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (TopDownMsgs, error)

	// GetBlockHash fetches the parent block hash at a height along with
	// its parent's hash.
	GetBlockHash(ctx context.Context, height int64) (GetBlockHashResult, error)

	// GetValidatorChangeset fetches validator set changes at a parent epoch.
	GetValidatorChangeset(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (ValidatorChangeSet, error)

	// LatestParentFinality reports the highest parent height committed
	// into the child.
	LatestParentFinality(ctx context.Context) (ParentFinality, error)
}

// ValidatorRewarder queries and claims validator reward entitlements.
// Rewards can be claimed on one subnet for activity attributed to another.
type ValidatorRewarder interface {
	// QueryRewardClaims lists the claims a validator holds on the claim
	// subnet for activity on the reward-origin subnet.
	QueryRewardClaims(ctx context.Context, validator address.Address, rewardOrigin subnetid.SubnetID) ([]RewardClaim, error)

	// QueryValidatorRewards reports the total unclaimed reward amount.
	QueryValidatorRewards(ctx context.Context, validator address.Address, rewardOrigin subnetid.SubnetID) (*big.Int, error)

	// BatchSubnetClaim submits a batch of claims on the claim subnet for
	// activity attributed to the reward-origin subnet.
	BatchSubnetClaim(ctx context.Context, submitter address.Address, claimSubnet, rewardOrigin subnetid.SubnetID, claims []RewardClaim) error
}
