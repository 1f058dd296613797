package session

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
)

// Manager is the only mutator of session state. Handlers go through it and
// never touch a Store directly.
type Manager struct {
	store Store
	ttl   time.Duration
	idle  time.Duration // zero means fixed expiry
	now   func() time.Time
}

type Option func(*Manager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSlidingExpiry makes every successful Validate push ExpiresAt to
// now+idle, capped at the absolute expiry set on Create.
func WithSlidingExpiry(idle time.Duration) Option {
	return func(m *Manager) { m.idle = idle }
}

// NewManager returns a Manager issuing sessions that live at most ttl.
func NewManager(store Store, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sliding reports whether the manager extends sessions on use.
func (m *Manager) Sliding() bool {
	return m.idle > 0
}

// Create mints a token bound to principalID. The token is returned to the
// caller once and is never stored.
func (m *Manager) Create(ctx context.Context, principalID string) (string, *Session, error) {
	if principalID == "" {
		return "", nil, oops.Code("SESSION_INVALID_PRINCIPAL").Errorf("principal id cannot be empty")
	}

	token, err := GenerateID()
	if err != nil {
		return "", nil, oops.Code("SESSION_TOKEN_GENERATE_FAILED").Wrap(err)
	}

	now := m.now()
	absolute := now.Add(m.ttl)
	expires := absolute
	if m.Sliding() {
		expires = minTime(now.Add(m.idle), absolute)
	}

	s := Session{
		SessionID:         storageKey(token),
		PrincipalID:       principalID,
		CreatedAt:         now,
		AbsoluteExpiresAt: absolute,
		ExpiresAt:         expires,
		LastSeenAt:        now,
	}

	if err := m.store.Create(ctx, s); err != nil {
		return "", nil, unavailable("create", err)
	}

	return token, &s, nil
}

// Validate resolves a token to its live session. Any token that is empty,
// malformed, unknown or expired yields ErrInvalidSession.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if !wellFormed(token) {
		return nil, ErrInvalidSession
	}

	id := storageKey(token)

	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, unavailable("get", err)
	}

	now := m.now()
	if s.ExpiredAt(now) {
		// lazy expiry; the sweeper or the backend TTL may get there first
		_ = m.store.Delete(ctx, id) //nolint:errcheck // best effort
		return nil, ErrInvalidSession
	}

	if !m.Sliding() {
		return s, nil
	}

	s.LastSeenAt = now
	s.ExpiresAt = minTime(now.Add(m.idle), s.AbsoluteExpiresAt)

	if err := m.store.Update(ctx, *s); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, unavailable("update", err)
	}

	return s, nil
}

// Destroy removes the session for token. Unknown or malformed tokens are
// not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if !wellFormed(token) {
		return nil
	}

	if err := m.store.Delete(ctx, storageKey(token)); err != nil && !errors.Is(err, ErrNotFound) {
		return unavailable("delete", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return oops.Code("SESSION_STORE_UNAVAILABLE").
		With("operation", op).
		Wrap(errors.Join(ErrStoreUnavailable, err))
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
