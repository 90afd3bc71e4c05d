// Package checkpoint defines the bottom-up checkpoint data model: the
// checkpoint itself, the signed bundle relayed to the parent, quorum
// certificate events, and validator records. Commitments and block
// references are 32-byte hashes.
package checkpoint

import (
	"math/big"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// Signature is a raw validator signature over a checkpoint commitment.
type Signature []byte

// BottomUpCheckpoint is a periodic summary of a subnet's state and
// cross-messages, produced in the child and submitted to its parent.
type BottomUpCheckpoint struct {
	// Subnet is the child subnet the checkpoint describes.
	Subnet subnetid.SubnetID
	// Height is the child chain height the checkpoint was cut at.
	Height int64
	// BlockHash is the child block at Height.
	BlockHash chainhash.Hash
	// NextConfigurationNumber is the validator configuration that takes
	// effect after this checkpoint is committed.
	NextConfigurationNumber uint64
	// MsgsRoot commits to the batch of bottom-up messages in this period.
	MsgsRoot chainhash.Hash
}

// Bundle pairs a checkpoint with the signatures collected for it. The
// signature at index i belongs to the signatory at index i.
type Bundle struct {
	Checkpoint  BottomUpCheckpoint
	Signatures  []Signature
	Signatories []address.Address
}

// QuorumReachedEvent records that sufficient validator weight signed a
// checkpoint commitment at a height.
type QuorumReachedEvent struct {
	Height      int64
	Commitment  chainhash.Hash
	TotalWeight *big.Int
}

// ValidatorInfo describes one validator's membership in a subnet.
type ValidatorInfo struct {
	Addr address.Address
	// Weight is the validator's voting power (collateral or federated).
	Weight *big.Int
	// PublicKey is the validator's consensus public key, ecosystem-encoded.
	PublicKey []byte
}

// ValidatorData is per-validator activity attributed to a checkpoint
// period, the basis for reward claims.
type ValidatorData struct {
	Validator       address.Address
	BlocksCommitted uint64
}

// ValidatorClaim is a reward claim: the activity data plus the inclusion
// proof against the checkpoint's activity commitment.
type ValidatorClaim struct {
	Data  ValidatorData
	Proof []chainhash.Hash
}
