package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// brokenStore fails every call.
type brokenStore struct{ err error }

func (b brokenStore) Create(context.Context, Session) error         { return b.err }
func (b brokenStore) Get(context.Context, string) (*Session, error) { return nil, b.err }
func (b brokenStore) Update(context.Context, Session) error         { return b.err }
func (b brokenStore) Delete(context.Context, string) error          { return b.err }

func TestManager_CreateValidate(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	token, sess, err := m.Create(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, token, tokenLen)
	assert.Equal(t, "admin", sess.PrincipalID)
	assert.Equal(t, clock.Now(), sess.CreatedAt)
	assert.Equal(t, clock.Now().Add(time.Hour), sess.ExpiresAt)
	assert.Equal(t, sess.ExpiresAt, sess.AbsoluteExpiresAt)

	got, err := m.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.PrincipalID)

	t.Run("token is not the storage key", func(t *testing.T) {
		_, err := store.Get(ctx, token)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get(ctx, sess.SessionID)
		assert.NoError(t, err)
	})
}

func TestManager_TokensAreUnique(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		token, _, err := m.Create(ctx, "admin")
		require.NoError(t, err)
		require.False(t, seen[token])
		seen[token] = true
	}
}

func TestManager_CreateRejectsEmptyPrincipal(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	_, _, err := m.Create(context.Background(), "")
	assert.Error(t, err)
}

func TestManager_InvalidTokens(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	unknown, err := GenerateID()
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":       "",
		"short":       "abc",
		"bad charset": "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!",
		"unknown":     unknown,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Validate(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestManager_FixedExpiry(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	token, _, err := m.Create(ctx, "admin")
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = m.Validate(ctx, token)
	require.NoError(t, err)

	// use does not extend a fixed session
	clock.Advance(time.Minute + time.Nanosecond)
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// expired entry was removed lazily
	assert.Equal(t, 0, store.Len())
}

func TestManager_ExpiresExactlyAtDeadline(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(NewMemoryStore(), time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	token, _, err := m.Create(ctx, "admin")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_SlidingExpiry(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(NewMemoryStore(), time.Hour, WithClock(clock.Now), WithSlidingExpiry(10*time.Minute))
	ctx := context.Background()
	require.True(t, m.Sliding())

	token, sess, err := m.Create(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(10*time.Minute), sess.ExpiresAt)
	assert.Equal(t, clock.Now().Add(time.Hour), sess.AbsoluteExpiresAt)

	t.Run("use extends the idle window", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			clock.Advance(9 * time.Minute)
			got, err := m.Validate(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, clock.Now(), got.LastSeenAt)
		}
	})

	t.Run("never past the absolute expiry", func(t *testing.T) {
		// at 54m the idle window would end at 64m, past the 60m cap
		clock.Advance(9 * time.Minute)
		got, err := m.Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, sess.AbsoluteExpiresAt, got.ExpiresAt)

		clock.Advance(6 * time.Minute)
		_, err = m.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestManager_SlidingIdleTimeout(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(NewMemoryStore(), time.Hour, WithClock(clock.Now), WithSlidingExpiry(10*time.Minute))
	ctx := context.Background()

	token, _, err := m.Create(ctx, "admin")
	require.NoError(t, err)

	clock.Advance(10*time.Minute + time.Second)
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	token, _, err := m.Create(ctx, "admin")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, token))
	require.NoError(t, m.Destroy(ctx, token))
	require.NoError(t, m.Destroy(ctx, ""))
	require.NoError(t, m.Destroy(ctx, "garbage"))

	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_BackendFailure(t *testing.T) {
	boom := errors.New("connection refused")
	m := NewManager(brokenStore{err: boom}, time.Hour)
	ctx := context.Background()

	_, _, err := m.Create(ctx, "admin")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, boom)

	token, err := GenerateID()
	require.NoError(t, err)

	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidSession)

	err = m.Destroy(ctx, token)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, WithSlidingExpiry(time.Minute))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				token, _, err := m.Create(ctx, "admin")
				if !assert.NoError(t, err) {
					return
				}
				_, err = m.Validate(ctx, token)
				assert.NoError(t, err)
				assert.NoError(t, m.Destroy(ctx, token))
				_, err = m.Validate(ctx, token)
				assert.ErrorIs(t, err, ErrInvalidSession)
			}
		}()
	}
	wg.Wait()
}
