// Package remote adapts a database/sql handle into the RemoteConnection
// contract consumed by the hive façade. Statement execution and metadata
// queries are issued against the remote service's information schema.
package remote

import "fmt"

// ClientError is the failure type raised by this client adapter for errors
// originating in the remote service or its driver. The hive façade's client
// error registry matches it by type identity.
type ClientError struct {
	Op  string
	Err error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying driver failure.
func (e *ClientError) Unwrap() error { return e.Err }

// ProtocolError indicates the remote service returned a result shape this
// adapter cannot interpret.
type ProtocolError struct {
	Detail string
}

func (e *ProtocolError) Error() string {
	return "remote protocol error: " + e.Detail
}
