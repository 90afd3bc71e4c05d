package accountmgr

import (
	"math/big"

	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// Gateway and registry contract method names.
const (
	methodCreateSubnet         = "createSubnet"
	methodJoinSubnet           = "joinSubnet"
	methodPreFund              = "preFund"
	methodFund                 = "fund"
	methodFundWithToken        = "fundWithToken"
	methodApproveToken         = "approveToken"
	methodStake                = "stake"
	methodUnstake              = "unstake"
	methodLeave                = "leave"
	methodKill                 = "kill"
	methodRelease              = "release"
	methodPropagate            = "propagate"
	methodClaimCollateral      = "claim"
	methodListChildSubnets     = "listSubnets"
	methodGenesisInfo          = "genesisInfo"
	methodValidatorInfo        = "getValidator"
	methodListValidators       = "getActiveValidators"
	methodSetFederatedPower    = "setFederatedPower"
	methodSupplySource         = "supplySource"
	methodCollateralSource     = "collateralSource"
	methodAddBootstrap         = "addBootstrapNode"
	methodListBootstrapNodes   = "getBootstrapNodes"
	methodSubmitCheckpoint     = "submitCheckpoint"
	methodCheckpointBundleAt   = "bottomUpCheckpoint"
	methodQuorumEvents         = "quorumReachedEvents"
	methodCheckpointPeriod     = "bottomUpCheckPeriod"
	methodLastCheckpointHeight = "lastBottomUpCheckpointHeight"
	methodCurrentEpoch         = "blockNumber"
	methodGenesisEpoch         = "genesisEpoch"
	methodChainHead            = "chainHead"
	methodTopDownMsgs          = "getTopDownMsgs"
	methodBlockHash            = "getBlockHash"
	methodValidatorChangeset   = "getValidatorChangeset"
	methodParentFinality       = "getLatestParentFinality"
	methodRewardClaims         = "pendingRewardClaims"
	methodValidatorRewards     = "pendingRewards"
	methodBatchClaim           = "batchSubnetClaim"
)

// Typed argument and result shapes of the contract calls. The backend
// translates these to and from ABI values.

type subnetArgs struct {
	Subnet subnetid.SubnetID
}

type epochResult struct {
	Epoch int64
}

type createSubnetArgs struct {
	Params manager.AccountConstructParams
}

type createSubnetResult struct {
	Actor string
}

type joinSubnetArgs struct {
	Subnet     subnetid.SubnetID
	Collateral *big.Int
	PublicKey  []byte
}

type amountArgs struct {
	Subnet subnetid.SubnetID
	Amount *big.Int
}

type transferArgs struct {
	Subnet subnetid.SubnetID
	To     string
	Amount *big.Int
}

type propagateArgs struct {
	Subnet     subnetid.SubnetID
	PostboxKey []byte
}

type listChildSubnetsArgs struct {
	Gateway string
}

type validatorArgs struct {
	Subnet    subnetid.SubnetID
	Validator string
}

type federatedPowerArgs struct {
	Subnet     subnetid.SubnetID
	Validators []string
	PublicKeys [][]byte
	Power      []*big.Int
}

type bootstrapArgs struct {
	Subnet   subnetid.SubnetID
	Endpoint string
}

type submitCheckpointArgs struct {
	Bundle checkpoint.Bundle
}

type heightArgs struct {
	Height int64
}

type bundleAtResult struct {
	Exists bool
	Bundle checkpoint.Bundle
}

type epochQueryArgs struct {
	Subnet subnetid.SubnetID
	Epoch  int64
}

type rewardClaimArgs struct {
	Validator    string
	RewardOrigin subnetid.SubnetID
}

type batchClaimArgs struct {
	ClaimSubnet  subnetid.SubnetID
	RewardOrigin subnetid.SubnetID
	Claims       []manager.RewardClaim
}
