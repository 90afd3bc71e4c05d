package checkpoint

import (
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
)

// StakingOp discriminates a validator set change observed on the parent.
type StakingOp int

const (
	// Deposit adds collateral for a validator.
	Deposit StakingOp = iota
	// Withdraw removes collateral from a validator.
	Withdraw
	// SetMetadata replaces a validator's consensus metadata (public key).
	SetMetadata
	// SetFederatedPower assigns power directly in federated subnets.
	SetFederatedPower
)

// StakingChange is one validator set mutation.
type StakingChange struct {
	Op        StakingOp
	Validator address.Address
	// Amount is the collateral delta for Deposit/Withdraw, nil otherwise.
	Amount *big.Int
	// Metadata is the new consensus metadata for SetMetadata, nil otherwise.
	Metadata []byte
}

// StakingChangeRequest orders a change into the configuration sequence the
// child applies deterministically.
type StakingChangeRequest struct {
	Change              StakingChange
	ConfigurationNumber uint64
}
