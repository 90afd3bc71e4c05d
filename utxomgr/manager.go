package utxomgr

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/bsv-blockchain/go-sdk/chainhash"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/crossmsg"
	"github.com/bitfsorg/libsubnet-go/keys"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// Manager speaks the subnet JSON-RPC protocol of a UTXO node. Lifecycle
// and query operations the node exposes (createsubnet, joinsubnet,
// prefundsubnet, fundsubnet, getgenesisinfo, getrootnetmessages) are
// translated into the canonical model; everything else returns
// manager.ErrUnsupportedOperation.
type Manager struct {
	rpc *Client
}

// NewManager returns a manager over an existing RPC client.
func NewManager(rpc *Client) *Manager { return &Manager{rpc: rpc} }

var (
	_ manager.SubnetManager        = (*Manager)(nil)
	_ manager.TopDownFinalityQuery = (*Manager)(nil)
)

// satoshis converts a canonical amount into the node's unsigned 64-bit
// base unit.
func satoshis(amount *big.Int) (uint64, error) {
	if amount == nil {
		return 0, nil
	}
	if amount.Sign() < 0 || !amount.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit the utxo 64-bit base unit", crossmsg.ErrValueOutOfRange, amount)
	}
	return amount.Uint64(), nil
}

// CreateSubnet registers a subnet below a UTXO root via createsubnet and
// returns its governing address: the raw chain-specific identifier wrapped
// in a delegated address.
func (m *Manager) CreateSubnet(ctx context.Context, from address.Address, params manager.ConstructParams) (address.Address, error) {
	p, ok := params.(manager.UtxoConstructParams)
	if !ok {
		return address.Undef, fmt.Errorf("%w: CreateSubnet requires utxo construct params", manager.ErrEcosystemMismatch)
	}
	if p.Parent.NetworkType() != subnetid.UtxoChain {
		return address.Undef, fmt.Errorf("%w: parent %s is not a utxo chain", manager.ErrEcosystemMismatch, p.Parent)
	}
	whitelist := make([]string, 0, len(p.ValidatorWhitelist))
	for i, pk := range p.ValidatorWhitelist {
		if err := keys.ValidateXOnlyPublicKey(pk); err != nil {
			return address.Undef, fmt.Errorf("validator whitelist entry %d: %w", i, err)
		}
		whitelist = append(whitelist, hex.EncodeToString(pk))
	}

	result, err := m.rpc.Call(ctx, "createsubnet", map[string]any{
		"parent":                  p.Parent.String(),
		"from":                    from.String(),
		"min_validators":          p.MinValidators,
		"min_validator_stake":     p.MinValidatorStake,
		"bottomup_check_period":   p.BottomUpCheckPeriod,
		"active_validators_limit": p.ActiveValidatorsLimit,
		"min_cross_msg_fee":       p.MinCrossMsgFee,
		"validator_whitelist":     whitelist,
	})
	if err != nil {
		return address.Undef, err
	}

	obj, err := decodeObject(result, "result")
	if err != nil {
		return address.Undef, err
	}
	idHex, err := fieldString(obj, "subnet_id", "result.subnet_id")
	if err != nil {
		return address.Undef, err
	}
	raw, err := hex.DecodeString(idHex)
	if err != nil {
		return address.Undef, fmt.Errorf("%w: result.subnet_id is not valid hex", ErrResponseShape)
	}
	addr, err := address.NewDelegated(subnetid.UtxoAddressNamespace, raw)
	if err != nil {
		return address.Undef, fmt.Errorf("%w: result.subnet_id: %v", ErrResponseShape, err)
	}
	return addr, nil
}

// JoinSubnet stakes collateral via joinsubnet and returns the epoch the
// join was included at.
func (m *Manager) JoinSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address, params manager.JoinParams) (int64, error) {
	p, ok := params.(manager.UtxoJoinParams)
	if !ok {
		return 0, fmt.Errorf("%w: JoinSubnet requires utxo join params", manager.ErrEcosystemMismatch)
	}
	if err := requireUtxoParent(subnet); err != nil {
		return 0, err
	}
	if err := keys.ValidateXOnlyPublicKey(p.PublicKey); err != nil {
		return 0, err
	}

	result, err := m.rpc.Call(ctx, "joinsubnet", map[string]any{
		"subnet":         subnet.String(),
		"from":           from.String(),
		"collateral":     p.Collateral,
		"ip":             p.IP,
		"backup_address": p.BackupAddress,
		"public_key":     hex.EncodeToString(p.PublicKey),
	})
	if err != nil {
		return 0, err
	}
	return epochResult(result)
}

// PreFund injects genesis balance via prefundsubnet.
func (m *Manager) PreFund(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	if err := requireUtxoParent(subnet); err != nil {
		return err
	}
	sats, err := satoshis(amount)
	if err != nil {
		return err
	}
	_, err = m.rpc.Call(ctx, "prefundsubnet", map[string]any{
		"subnet": subnet.String(),
		"from":   from.String(),
		"amount": sats,
	})
	return err
}

// Fund moves value into an active subnet via fundsubnet and returns the
// epoch the fund was included at.
func (m *Manager) Fund(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	if err := requireUtxoParent(subnet); err != nil {
		return 0, err
	}
	sats, err := satoshis(amount)
	if err != nil {
		return 0, err
	}
	result, err := m.rpc.Call(ctx, "fundsubnet", map[string]any{
		"subnet": subnet.String(),
		"from":   from.String(),
		"to":     to.String(),
		"amount": sats,
	})
	if err != nil {
		return 0, err
	}
	return epochResult(result)
}

// GetGenesisInfo fetches the genesis state via getgenesisinfo. The subnet
// must be reported bootstrapped; individual validator entries that fail to
// parse are dropped from the set rather than failing the call.
func (m *Manager) GetGenesisInfo(ctx context.Context, subnet subnetid.SubnetID) (manager.SubnetGenesisInfo, error) {
	var info manager.SubnetGenesisInfo
	if err := requireUtxoParent(subnet); err != nil {
		return info, err
	}

	result, err := m.rpc.Call(ctx, "getgenesisinfo", map[string]any{"subnet": subnet.String()})
	if err != nil {
		return info, err
	}
	obj, err := decodeObject(result, "result")
	if err != nil {
		return info, err
	}

	bootstrapped, err := fieldBool(obj, "bootstrapped", "result.bootstrapped")
	if err != nil {
		return info, err
	}
	if !bootstrapped {
		return info, fmt.Errorf("%w: %s", ErrNotBootstrapped, subnet)
	}

	limit, err := fieldUint64(obj, "active_validators_limit", "result.active_validators_limit")
	if err != nil {
		return info, err
	}
	if limit > math.MaxUint16 {
		return info, fmt.Errorf("%w: result.active_validators_limit %d exceeds the 16-bit range", ErrResponseShape, limit)
	}
	minValidators, err := fieldUint64(obj, "min_validators", "result.min_validators")
	if err != nil {
		return info, err
	}
	minStake, err := fieldUint64(obj, "min_validator_stake", "result.min_validator_stake")
	if err != nil {
		return info, err
	}
	period, err := fieldInt64(obj, "bottomup_check_period", "result.bottomup_check_period")
	if err != nil {
		return info, err
	}
	genesisEpoch, err := fieldInt64(obj, "genesis_epoch", "result.genesis_epoch")
	if err != nil {
		return info, err
	}
	entries, err := fieldArray(obj, "genesis_validators", "result.genesis_validators")
	if err != nil {
		return info, err
	}

	validators := make([]checkpoint.ValidatorInfo, 0, len(entries))
	for _, raw := range entries {
		if v, ok := parseGenesisValidator(raw); ok {
			validators = append(validators, v)
		}
	}

	return manager.SubnetGenesisInfo{
		Bootstrapped:          true,
		ActiveValidatorsLimit: uint16(limit),
		MinValidators:         minValidators,
		MinValidatorStake:     new(big.Int).SetUint64(minStake),
		BottomUpCheckPeriod:   period,
		GenesisEpoch:          genesisEpoch,
		Validators:            validators,
	}, nil
}

// parseGenesisValidator decodes one genesis_validators entry. Malformed
// entries are tolerated: the second return is false and the entry is
// dropped from the set.
func parseGenesisValidator(raw []byte) (checkpoint.ValidatorInfo, bool) {
	var entry struct {
		Addr      string `json:"addr"`
		Weight    uint64 `json:"weight"`
		PublicKey string `json:"public_key"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return checkpoint.ValidatorInfo{}, false
	}
	addr, err := address.NewFromString(entry.Addr)
	if err != nil {
		return checkpoint.ValidatorInfo{}, false
	}
	pk, err := hex.DecodeString(entry.PublicKey)
	if err != nil {
		return checkpoint.ValidatorInfo{}, false
	}
	if err := keys.ValidateXOnlyPublicKey(pk); err != nil {
		return checkpoint.ValidatorInfo{}, false
	}
	return checkpoint.ValidatorInfo{
		Addr:      addr,
		Weight:    new(big.Int).SetUint64(entry.Weight),
		PublicKey: pk,
	}, true
}

// GenesisEpoch reports when the subnet was created, as observed on the
// parent via getgenesisinfo.
func (m *Manager) GenesisEpoch(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	info, err := m.GetGenesisInfo(ctx, subnet)
	if err != nil {
		return 0, err
	}
	return info.GenesisEpoch, nil
}

// GetTopDownMsgs fetches cross messages observed on the root for the
// subnet at an epoch via getrootnetmessages. One response spans exactly
// one block: every entry must report the same block hash, and only the
// "fund" kind label is recognized, mapping to a Transfer envelope with the
// nonce preserved verbatim.
func (m *Manager) GetTopDownMsgs(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (manager.TopDownMsgs, error) {
	var out manager.TopDownMsgs
	if err := requireUtxoParent(subnet); err != nil {
		return out, err
	}
	parent, ok := subnet.Parent()
	if !ok {
		return out, fmt.Errorf("utxomgr: %s is a root subnet and receives no top-down messages", subnet)
	}

	result, err := m.rpc.Call(ctx, "getrootnetmessages", map[string]any{
		"subnet": subnet.String(),
		"epoch":  epoch,
	})
	if err != nil {
		return out, err
	}
	obj, err := decodeObject(result, "result")
	if err != nil {
		return out, err
	}
	entries, err := fieldArray(obj, "messages", "result.messages")
	if err != nil {
		return out, err
	}

	var blockHash *chainhash.Hash
	msgs := make([]crossmsg.Envelope, 0, len(entries))
	for i, raw := range entries {
		path := fmt.Sprintf("result.messages[%d]", i)
		e, err := decodeObject(raw, path)
		if err != nil {
			return out, err
		}

		kind, err := fieldString(e, "kind", path+".kind")
		if err != nil {
			return out, err
		}
		if kind != "fund" {
			return out, fmt.Errorf("%w: %s.kind %q is not a recognized message kind", ErrResponseShape, path, kind)
		}

		hash, err := blockHashField(e, path)
		if err != nil {
			return out, err
		}
		if blockHash == nil {
			blockHash = hash
		} else if *blockHash != *hash {
			return out, fmt.Errorf("%w: %s.block_hash disagrees with the rest of the batch", ErrResponseShape, path)
		}

		fromStr, err := fieldString(e, "from_address", path+".from_address")
		if err != nil {
			return out, err
		}
		fromAddr, err := address.NewFromString(fromStr)
		if err != nil {
			return out, fmt.Errorf("%w: %s.from_address: %v", ErrResponseShape, path, err)
		}

		toObj, err := fieldObject(e, "to", path+".to")
		if err != nil {
			return out, err
		}
		toSubnetStr, err := fieldString(toObj, "subnet_id", path+".to.subnet_id")
		if err != nil {
			return out, err
		}
		toSubnet, err := subnetid.Parse(toSubnetStr)
		if err != nil {
			return out, fmt.Errorf("%w: %s.to.subnet_id: %v", ErrResponseShape, path, err)
		}
		toAddrStr, err := fieldString(toObj, "address", path+".to.address")
		if err != nil {
			return out, err
		}
		toAddr, err := address.NewFromString(toAddrStr)
		if err != nil {
			return out, fmt.Errorf("%w: %s.to.address: %v", ErrResponseShape, path, err)
		}

		value, err := fieldUint64(e, "value", path+".value")
		if err != nil {
			return out, err
		}
		nonce, err := fieldUint64(e, "nonce", path+".nonce")
		if err != nil {
			return out, err
		}

		env, err := crossmsg.NewEnvelope(crossmsg.Transfer,
			crossmsg.NewAddr(parent, fromAddr),
			crossmsg.NewAddr(toSubnet, toAddr),
			new(big.Int).SetUint64(value), nil, nonce)
		if err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrResponseShape, path, err)
		}
		msgs = append(msgs, env)
	}

	out.Msgs = msgs
	if blockHash != nil {
		out.BlockHash = *blockHash
	}
	return out, nil
}

func blockHashField(obj map[string]json.RawMessage, path string) (*chainhash.Hash, error) {
	hashHex, err := fieldString(obj, "block_hash", path+".block_hash")
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(hashHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.block_hash is not valid hex", ErrResponseShape, path)
	}
	hash, err := chainhash.NewHash(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.block_hash: %v", ErrResponseShape, path, err)
	}
	return hash, nil
}

// requireUtxoParent rejects subnets whose parent is not a UTXO chain; this
// backend only manages subnets directly below a UTXO root.
func requireUtxoParent(subnet subnetid.SubnetID) error {
	pt, ok := subnet.ParentNetworkType()
	if !ok || pt != subnetid.UtxoChain {
		return fmt.Errorf("%w: %s is not rooted on a utxo chain", manager.ErrEcosystemMismatch, subnet)
	}
	return nil
}

func epochResult(result json.RawMessage) (int64, error) {
	obj, err := decodeObject(result, "result")
	if err != nil {
		return 0, err
	}
	return fieldInt64(obj, "epoch", "result.epoch")
}

// Operations below have no method in the node's RPC surface.

func (m *Manager) FundWithToken(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return 0, unsupported("FundWithToken")
}

func (m *Manager) ApproveToken(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return unsupported("ApproveToken")
}

func (m *Manager) Stake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return unsupported("Stake")
}

func (m *Manager) Unstake(ctx context.Context, subnet subnetid.SubnetID, from address.Address, amount *big.Int) error {
	return unsupported("Unstake")
}

func (m *Manager) LeaveSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return unsupported("LeaveSubnet")
}

func (m *Manager) KillSubnet(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return unsupported("KillSubnet")
}

func (m *Manager) Release(ctx context.Context, subnet subnetid.SubnetID, from, to address.Address, amount *big.Int) (int64, error) {
	return 0, unsupported("Release")
}

func (m *Manager) Propagate(ctx context.Context, subnet subnetid.SubnetID, from address.Address, postboxKey []byte) error {
	return unsupported("Propagate")
}

func (m *Manager) ClaimCollateral(ctx context.Context, subnet subnetid.SubnetID, from address.Address) error {
	return unsupported("ClaimCollateral")
}

func (m *Manager) ListChildSubnets(ctx context.Context, gateway address.Address) ([]manager.SubnetInfo, error) {
	return nil, unsupported("ListChildSubnets")
}

func (m *Manager) GetValidatorInfo(ctx context.Context, subnet subnetid.SubnetID, validator address.Address) (checkpoint.ValidatorInfo, error) {
	return checkpoint.ValidatorInfo{}, unsupported("GetValidatorInfo")
}

func (m *Manager) ListValidators(ctx context.Context, subnet subnetid.SubnetID) ([]checkpoint.ValidatorInfo, error) {
	return nil, unsupported("ListValidators")
}

func (m *Manager) SetFederatedPower(ctx context.Context, from address.Address, subnet subnetid.SubnetID, validators []address.Address, publicKeys [][]byte, power []*big.Int) (int64, error) {
	return 0, unsupported("SetFederatedPower")
}

func (m *Manager) GetSubnetSupplySource(ctx context.Context, subnet subnetid.SubnetID) (manager.Asset, error) {
	return manager.Asset{}, unsupported("GetSubnetSupplySource")
}

func (m *Manager) GetSubnetCollateralSource(ctx context.Context, subnet subnetid.SubnetID) (manager.Asset, error) {
	return manager.Asset{}, unsupported("GetSubnetCollateralSource")
}

func (m *Manager) WalletBalance(ctx context.Context, addr address.Address) (*big.Int, error) {
	return nil, unsupported("WalletBalance")
}

func (m *Manager) SendValue(ctx context.Context, from, to address.Address, amount *big.Int) error {
	return unsupported("SendValue")
}

func (m *Manager) GetChainID(ctx context.Context) (uint64, error) {
	return 0, unsupported("GetChainID")
}

func (m *Manager) GetCommitSHA(ctx context.Context) (string, error) {
	return "", unsupported("GetCommitSHA")
}

func (m *Manager) AddBootstrap(ctx context.Context, subnet subnetid.SubnetID, from address.Address, endpoint string) error {
	return unsupported("AddBootstrap")
}

func (m *Manager) ListBootstrapNodes(ctx context.Context, subnet subnetid.SubnetID) ([]string, error) {
	return nil, unsupported("ListBootstrapNodes")
}

func (m *Manager) ChainHeadHeight(ctx context.Context) (int64, error) {
	return 0, unsupported("ChainHeadHeight")
}

func (m *Manager) GetBlockHash(ctx context.Context, height int64) (manager.GetBlockHashResult, error) {
	return manager.GetBlockHashResult{}, unsupported("GetBlockHash")
}

func (m *Manager) GetValidatorChangeset(ctx context.Context, subnet subnetid.SubnetID, epoch int64) (manager.ValidatorChangeSet, error) {
	return manager.ValidatorChangeSet{}, unsupported("GetValidatorChangeset")
}

func (m *Manager) LatestParentFinality(ctx context.Context) (manager.ParentFinality, error) {
	return manager.ParentFinality{}, unsupported("LatestParentFinality")
}

func unsupported(op string) error {
	return fmt.Errorf("%w: %s", manager.ErrUnsupportedOperation, op)
}
