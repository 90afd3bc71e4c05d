// Package accountmgr implements the subnet manager protocol for
// account-model chains. Operations dispatch to gateway and registry
// contract calls through a typed backend boundary; ABI encoding and
// transaction signing live behind that boundary, not here.
package accountmgr

import (
	"context"
	"math/big"

	"github.com/bitfsorg/libsubnet-go/address"
)

// GatewayBackend is the typed contract-call surface the manager drives.
// Invoke submits a state-mutating call and decodes its return into result
// when result is non-nil; Query performs a read-only call. Both take the
// contract method name and a typed argument struct.
type GatewayBackend interface {
	Invoke(ctx context.Context, from address.Address, method string, args, result any) error
	Query(ctx context.Context, method string, args, result any) error

	// ChainID reports the connected chain's numeric identifier.
	ChainID(ctx context.Context) (uint64, error)
	// Balance reports an address's native balance.
	Balance(ctx context.Context, addr address.Address) (*big.Int, error)
	// Transfer moves native value between two addresses.
	Transfer(ctx context.Context, from, to address.Address, amount *big.Int) error
	// CommitSHA reports the build revision of the connected node.
	CommitSHA(ctx context.Context) (string, error)
}

// MockGatewayBackend is a test double for GatewayBackend.
// All function fields must be set before the corresponding method is called.
type MockGatewayBackend struct {
	InvokeFn    func(ctx context.Context, from address.Address, method string, args, result any) error
	QueryFn     func(ctx context.Context, method string, args, result any) error
	ChainIDFn   func(ctx context.Context) (uint64, error)
	BalanceFn   func(ctx context.Context, addr address.Address) (*big.Int, error)
	TransferFn  func(ctx context.Context, from, to address.Address, amount *big.Int) error
	CommitSHAFn func(ctx context.Context) (string, error)
}

var _ GatewayBackend = (*MockGatewayBackend)(nil)

func (m *MockGatewayBackend) Invoke(ctx context.Context, from address.Address, method string, args, result any) error {
	return m.InvokeFn(ctx, from, method, args, result)
}
func (m *MockGatewayBackend) Query(ctx context.Context, method string, args, result any) error {
	return m.QueryFn(ctx, method, args, result)
}
func (m *MockGatewayBackend) ChainID(ctx context.Context) (uint64, error) {
	return m.ChainIDFn(ctx)
}
func (m *MockGatewayBackend) Balance(ctx context.Context, addr address.Address) (*big.Int, error) {
	return m.BalanceFn(ctx, addr)
}
func (m *MockGatewayBackend) Transfer(ctx context.Context, from, to address.Address, amount *big.Int) error {
	return m.TransferFn(ctx, from, to, amount)
}
func (m *MockGatewayBackend) CommitSHA(ctx context.Context) (string, error) {
	return m.CommitSHAFn(ctx)
}
