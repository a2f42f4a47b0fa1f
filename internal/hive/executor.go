package hive

import (
	"context"
	"errors"

	"hive-bridge/internal/domain"
)

// withClient resolves the active session's remote connection and runs op
// while holding the catalog's exclusive lock for the full duration. At most
// one remote round-trip is in flight per catalog instance at any time.
//
// Error translation happens once, here: cancellation always propagates
// untouched; failures the registry classifies as client-originated are
// re-raised as a CatalogError carrying the client error's type identity and
// message, with the original failure as cause; everything else passes
// through unchanged. Panics are never recovered.
func (c *Catalog) withClient(ctx context.Context, op func(conn domain.RemoteConnection) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.provider.Connection(ctx)
	if err != nil {
		return err
	}

	err = op(conn)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if identity, ok := c.registry.Classify(err); ok {
		return &domain.CatalogError{Message: identity + ": " + err.Error(), Cause: err}
	}
	return err
}
