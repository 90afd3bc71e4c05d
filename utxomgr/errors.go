package utxomgr

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure indicates the backend returned a non-success HTTP
	// status or the request could not be sent at all. Never retried here.
	ErrTransportFailure = errors.New("utxomgr: transport failure")

	// ErrProtocolError indicates the backend reported a structured JSON-RPC
	// error. The RPCError carries code, message, and data verbatim.
	ErrProtocolError = errors.New("utxomgr: rpc error")

	// ErrResponseShape indicates a field in a backend response is missing or
	// mistyped. The wrapped detail names the field path.
	ErrResponseShape = errors.New("utxomgr: unexpected response shape")

	// ErrNotBootstrapped indicates a genesis query against a subnet the
	// backend does not report as bootstrapped.
	ErrNotBootstrapped = errors.New("utxomgr: subnet not bootstrapped")
)

// RPCError is the structured error object of a JSON-RPC response,
// preserved verbatim. It unwraps to ErrProtocolError.
type RPCError struct {
	Code    int64
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("utxomgr: rpc error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("utxomgr: rpc error %d: %s", e.Code, e.Message)
}

func (e *RPCError) Unwrap() error { return ErrProtocolError }
