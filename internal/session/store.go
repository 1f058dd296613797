package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by backends for unknown session ids.
	ErrNotFound = errors.New("session: not found")

	// ErrInvalidSession covers absent, malformed and expired tokens.
	ErrInvalidSession = errors.New("session: invalid")

	// ErrStoreUnavailable wraps backend failures.
	ErrStoreUnavailable = errors.New("session: store unavailable")
)

// Session binds an opaque token to a principal for a bounded time window.
// SessionID is the storage key derived from the token, not the token itself.
type Session struct {
	SessionID         string    `json:"session_id"`
	PrincipalID       string    `json:"principal_id"`
	CreatedAt         time.Time `json:"created_at"`
	AbsoluteExpiresAt time.Time `json:"absolute_expires_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	LastSeenAt        time.Time `json:"last_seen_at"`
}

// ExpiredAt reports whether the session is no longer valid at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved.
// Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
