package provider

import (
	"fmt"

	"github.com/bitfsorg/libsubnet-go/accountmgr"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
	"github.com/bitfsorg/libsubnet-go/utxomgr"
)

// GatewayBackendFactory builds an account-ecosystem gateway backend from
// a resolved configuration. The backend carries the contract-call layer,
// which lives outside this library.
type GatewayBackendFactory func(cfg *RPCConfig) (accountmgr.GatewayBackend, error)

// Backend is the surface both ecosystem implementations expose: subnet
// lifecycle management plus top-down finality queries.
type Backend interface {
	manager.SubnetManager
	manager.TopDownFinalityQuery
}

// Provider resolves per-subnet configuration and constructs the manager
// backend matching a subnet's root ecosystem.
type Provider struct {
	cfg     *RPCConfig
	gateway GatewayBackendFactory
}

// New returns a provider over an already resolved configuration. The
// gateway factory may be nil when only UTXO-rooted subnets are used.
func New(cfg *RPCConfig, gateway GatewayBackendFactory) *Provider {
	return &Provider{cfg: cfg, gateway: gateway}
}

// BackendFor returns the backend for the subnet's parent ecosystem:
// subnet lifecycle operations execute on the parent chain, so dispatch
// follows the parent's network type. The root dispatches on its own type.
func (p *Provider) BackendFor(subnet subnetid.SubnetID) (Backend, error) {
	nt, ok := subnet.ParentNetworkType()
	if !ok {
		nt = subnet.RootNetworkType()
	}
	return p.backendFor(nt)
}

// BackendForUniversal dispatches on a universal identifier's root
// ecosystem. Identifiers rooted in an unrecognized namespace cannot be
// dispatched.
func (p *Provider) BackendForUniversal(subnet subnetid.UniversalSubnetID) (Backend, error) {
	nt, ok := subnet.RootNetworkType()
	if !ok {
		return nil, fmt.Errorf("%w: namespace %q", ErrUnknownEcosystem, subnet.Root().Namespace)
	}
	return p.backendFor(nt)
}

func (p *Provider) backendFor(nt subnetid.NetworkType) (Backend, error) {
	switch nt {
	case subnetid.UtxoChain:
		return utxomgr.NewManager(utxomgr.NewClient(p.cfg.URL, p.cfg.AuthToken, p.cfg.Timeout)), nil
	case subnetid.AccountChain:
		if p.gateway == nil {
			return nil, ErrNoAccountBackend
		}
		backend, err := p.gateway(p.cfg)
		if err != nil {
			return nil, fmt.Errorf("provider: build gateway backend: %w", err)
		}
		return accountmgr.NewManager(backend), nil
	default:
		return nil, fmt.Errorf("%w: network type %d", ErrUnknownEcosystem, nt)
	}
}
