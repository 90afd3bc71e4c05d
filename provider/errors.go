package provider

import "errors"

var (
	// ErrMissingConfig indicates no RPC endpoint could be resolved for a
	// subnet from flags, environment, or presets.
	ErrMissingConfig = errors.New("provider: missing rpc configuration")

	// ErrUnknownEcosystem indicates a subnet identifier whose root
	// ecosystem has no registered backend.
	ErrUnknownEcosystem = errors.New("provider: unknown root ecosystem")

	// ErrNoAccountBackend indicates an account-model subnet was requested
	// but no gateway backend factory was configured.
	ErrNoAccountBackend = errors.New("provider: no account gateway backend configured")

	// ErrDNSLookupFailed indicates a bootstrap discovery DNS query failed.
	ErrDNSLookupFailed = errors.New("provider: dns lookup failed")

	// ErrDNSSECValidationFailed indicates the upstream resolver did not
	// authenticate the bootstrap discovery response.
	ErrDNSSECValidationFailed = errors.New("provider: dnssec validation failed")

	// ErrNoEndpoints indicates discovery returned no bootstrap endpoints.
	ErrNoEndpoints = errors.New("provider: no bootstrap endpoints")
)
