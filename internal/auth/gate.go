package auth

import (
	"context"
	"errors"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/metrics"
	"github.com/matmo1/Another-book-store/internal/session"
)

var (
	// ErrUnauthenticated means no valid session was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized means the session principal lacks the capability.
	ErrUnauthorized = errors.New("unauthorized")
)

// Gate decides whether a session token may perform an operation that
// requires a capability. It fails closed: any error is a deny.
type Gate struct {
	sessions   *session.Manager
	principals credentials.Store
	metrics    *metrics.Metrics
}

func NewGate(sessions *session.Manager, principals credentials.Store, m *metrics.Metrics) *Gate {
	return &Gate{
		sessions:   sessions,
		principals: principals,
		metrics:    m,
	}
}

// Authorize returns the session's principal when it holds capability.
// Otherwise it returns ErrUnauthenticated or ErrUnauthorized.
func (g *Gate) Authorize(
	ctx context.Context,
	token string,
	capability credentials.Capability,
) (*credentials.Principal, error) {

	sess, err := g.sessions.Validate(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrInvalidSession) {
			logger.Error("session validation failed", map[string]any{
				"error": err.Error(),
			})
		}
		g.metrics.ObserveDecision(string(capability), metrics.DecisionUnauthenticated)
		return nil, ErrUnauthenticated
	}

	principal, err := g.principals.Lookup(ctx, sess.PrincipalID)
	if err != nil {
		if !errors.Is(err, credentials.ErrNotFound) {
			logger.Error("principal lookup failed", map[string]any{
				"principal_id": sess.PrincipalID,
				"error":        err.Error(),
			})
		}
		g.metrics.ObserveDecision(string(capability), metrics.DecisionUnauthorized)
		return nil, ErrUnauthorized
	}

	if !principal.HasCapability(capability) {
		g.metrics.ObserveDecision(string(capability), metrics.DecisionUnauthorized)
		return nil, ErrUnauthorized
	}

	g.metrics.ObserveDecision(string(capability), metrics.DecisionAllow)
	return principal, nil
}
