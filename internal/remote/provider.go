package remote

import (
	"context"
	"sync"

	"hive-bridge/internal/domain"
)

// Session owns a remote connection for its lifetime. Creation and teardown
// of the underlying handle happen outside the catalog core.
type Session struct {
	conn domain.RemoteConnection
}

// NewSession wraps a connection in a session.
func NewSession(conn domain.RemoteConnection) *Session {
	return &Session{conn: conn}
}

// Connection returns the session's connection.
func (s *Session) Connection() domain.RemoteConnection { return s.conn }

var _ domain.ConnectionProvider = (*SessionProvider)(nil)

// SessionProvider resolves the currently active session's connection on
// every call. The active session may be replaced at any time; in-flight
// operations keep the connection they resolved.
type SessionProvider struct {
	mu      sync.RWMutex
	current *Session
}

// NewSessionProvider creates a provider with no active session.
func NewSessionProvider() *SessionProvider {
	return &SessionProvider{}
}

// Activate makes s the active session. Passing nil deactivates.
func (p *SessionProvider) Activate(s *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = s
}

// Connection implements domain.ConnectionProvider.
func (p *SessionProvider) Connection(ctx context.Context) (domain.RemoteConnection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return nil, domain.ErrNoActiveConnection
	}
	return p.current.conn, nil
}
