package manager

import (
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// AssetKind discriminates how a subnet denominates a supply or collateral
// source.
type AssetKind int

const (
	// Native denominates in the parent chain's native token.
	Native AssetKind = iota
	// Token denominates in a parent-chain token contract.
	Token
)

// Asset names a funding source: the native token or a token contract.
type Asset struct {
	Kind AssetKind
	// TokenAddress is the token contract; meaningful only when Kind is Token.
	TokenAddress address.Address
}

// PermissionMode controls how a subnet admits validators.
type PermissionMode int

const (
	// Collateral admits any validator staking above the minimum.
	Collateral PermissionMode = iota
	// Federated assigns validator power explicitly by the subnet owner.
	Federated
	// Static fixes the validator set at genesis.
	Static
)

// ConstructParams are the ecosystem-tagged parameters of CreateSubnet.
// The set of implementations is closed: AccountConstructParams and
// UtxoConstructParams. A backend receiving the other ecosystem's variant
// fails with ErrEcosystemMismatch.
type ConstructParams interface {
	constructParams()
}

// AccountConstructParams creates a subnet below an account-model parent.
// Amounts are in the parent chain's smallest native unit.
type AccountConstructParams struct {
	Parent                subnetid.SubnetID
	MinValidators         uint64
	MinValidatorStake     *big.Int
	BottomUpCheckPeriod   int64
	ActiveValidatorsLimit uint16
	MinCrossMsgFee        *big.Int
	PermissionMode        PermissionMode
	SupplySource          Asset
	CollateralSource      Asset
}

func (AccountConstructParams) constructParams() {}

// UtxoConstructParams creates a subnet below a UTXO-model parent. Amounts
// are in base units (satoshi-style, unsigned 64-bit).
type UtxoConstructParams struct {
	Parent                subnetid.SubnetID
	MinValidators         uint64
	MinValidatorStake     uint64
	BottomUpCheckPeriod   int64
	ActiveValidatorsLimit uint16
	MinCrossMsgFee        uint64
	// ValidatorWhitelist holds 32-byte x-only public keys admitted at
	// genesis; empty means open admission.
	ValidatorWhitelist [][]byte
}

func (UtxoConstructParams) constructParams() {}

// JoinParams are the ecosystem-tagged parameters of JoinSubnet.
type JoinParams interface {
	joinParams()
}

// AccountJoinParams joins an account-model subnet.
type AccountJoinParams struct {
	Collateral *big.Int
	// PublicKey is the validator's consensus public key.
	PublicKey []byte
}

func (AccountJoinParams) joinParams() {}

// UtxoJoinParams joins a UTXO-rooted subnet.
type UtxoJoinParams struct {
	// Collateral is the stake in base units.
	Collateral uint64
	// IP is the validator's advertised network endpoint.
	IP string
	// BackupAddress receives the collateral back on leave/kill.
	BackupAddress string
	// PublicKey is the validator's 32-byte x-only public key.
	PublicKey []byte
}

func (UtxoJoinParams) joinParams() {}
