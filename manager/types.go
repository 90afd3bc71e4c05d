package manager

import (
	"math/big"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/crossmsg"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// SubnetInfo summarizes one child subnet as seen from its parent.
type SubnetInfo struct {
	ID subnetid.SubnetID
	// Stake is the total collateral locked for the subnet.
	Stake *big.Int
	// CircSupply is the circulating supply inside the subnet.
	CircSupply *big.Int
	// GenesisEpoch is the parent height the subnet was created at.
	GenesisEpoch int64
}

// SubnetGenesisInfo is the genesis state of a subnet as reported by its
// parent, used to bootstrap a child node.
type SubnetGenesisInfo struct {
	Bootstrapped          bool
	ActiveValidatorsLimit uint16
	MinValidators         uint64
	MinValidatorStake     *big.Int
	BottomUpCheckPeriod   int64
	GenesisEpoch          int64
	Validators            []checkpoint.ValidatorInfo
}

// TopDownMsgs pairs the envelopes to relay into a child with the parent
// block hash they were observed in, for replay safety. All envelopes in
// one batch belong to a single parent block.
type TopDownMsgs struct {
	Msgs      []crossmsg.Envelope
	BlockHash chainhash.Hash
}

// ValidatorChangeSet pairs validator set changes with the parent block
// hash they were observed in.
type ValidatorChangeSet struct {
	Changes   []checkpoint.StakingChangeRequest
	BlockHash chainhash.Hash
}

// GetBlockHashResult carries a block hash together with its parent's, so
// callers can verify chain continuity.
type GetBlockHashResult struct {
	BlockHash       chainhash.Hash
	ParentBlockHash chainhash.Hash
}

// ParentFinality is the highest parent height already committed into the
// child, with the block hash committed for it.
type ParentFinality struct {
	Height    int64
	BlockHash chainhash.Hash
}

// RewardClaim is one claimable reward entry, indexed by the checkpoint
// height the activity was attributed to.
type RewardClaim struct {
	CheckpointHeight int64
	Claim            checkpoint.ValidatorClaim
}
