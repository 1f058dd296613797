// Package auth ties credential verification to session issuance and
// gates protected operations on a valid session.
package auth

import (
	"context"
	"errors"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/metrics"
	"github.com/matmo1/Another-book-store/internal/session"
)

// Authenticator runs login and logout. It never logs secrets or tokens.
type Authenticator struct {
	credentials *credentials.Service
	sessions    *session.Manager
	metrics     *metrics.Metrics
}

func NewAuthenticator(
	creds *credentials.Service,
	sessions *session.Manager,
	m *metrics.Metrics,
) *Authenticator {
	return &Authenticator{
		credentials: creds,
		sessions:    sessions,
		metrics:     m,
	}
}

// Login verifies the pair and, on success, issues a session token.
// Unknown principal and wrong secret both return
// credentials.ErrInvalidCredentials.
func (a *Authenticator) Login(
	ctx context.Context,
	principalID string,
	secret string,
) (string, *session.Session, error) {

	principal, err := a.credentials.Authenticate(ctx, principalID, secret)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		a.metrics.ObserveLogin(metrics.LoginInvalid)
		logger.Info("login rejected", map[string]any{
			"principal_id": principalID,
		})
		return "", nil, credentials.ErrInvalidCredentials
	}
	if err != nil {
		a.metrics.ObserveLogin(metrics.LoginError)
		return "", nil, err
	}

	token, sess, err := a.sessions.Create(ctx, principal.ID)
	if err != nil {
		a.metrics.ObserveLogin(metrics.LoginError)
		return "", nil, err
	}

	a.metrics.ObserveLogin(metrics.LoginSuccess)
	logger.Info("login succeeded", map[string]any{
		"principal_id": principal.ID,
		"expires_at":   sess.ExpiresAt,
	})

	return token, sess, nil
}

// Logout destroys the session for token, whatever its state. Only a
// backend failure is reported.
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	a.metrics.ObserveLogout()
	return a.sessions.Destroy(ctx, token)
}
