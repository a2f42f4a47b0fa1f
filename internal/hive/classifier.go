package hive

import (
	"errors"
	"reflect"
)

// ClientErrorRegistry is an immutable set of fully-qualified error type
// identities considered to originate from the remote client library. It is
// consulted only for classification and never mutated after construction.
//
// Matching is by type name rather than type equality so that the same
// logical client error loaded from two different plugin binaries still
// classifies as client-originated.
type ClientErrorRegistry struct {
	names map[string]struct{}
}

// NewClientErrorRegistry builds a registry from fully-qualified type
// identities of the form "pkg/path.TypeName".
func NewClientErrorRegistry(identities ...string) *ClientErrorRegistry {
	names := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		names[id] = struct{}{}
	}
	return &ClientErrorRegistry{names: names}
}

// DefaultClientErrorRegistry covers the error types surfaced by the bundled
// remote client adapter.
func DefaultClientErrorRegistry() *ClientErrorRegistry {
	return NewClientErrorRegistry(
		"hive-bridge/internal/remote.ClientError",
		"hive-bridge/internal/remote.ProtocolError",
	)
}

// Classify walks err's causal chain and reports the first link whose type
// identity is registered, returning that identity. It never panics and
// reports false for nil errors and for chains that exhaust without a match.
func (r *ClientErrorRegistry) Classify(err error) (string, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		id := typeIdentity(e)
		if _, ok := r.names[id]; ok {
			return id, true
		}
	}
	return "", false
}

// typeIdentity returns the fully-qualified type name of an error value,
// dereferencing pointer types.
func typeIdentity(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
