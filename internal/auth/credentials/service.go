package credentials

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyVerifier is checked when the principal does not exist, so an unknown
// id costs the same argon2 work as a wrong password. It matches no password.
//
//nolint:gosec // not a credential
const dummyVerifier = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Authenticate checks a presented credential pair. Unknown principal and
// wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(
	ctx context.Context,
	principalID string,
	password string,
) (*Principal, error) {

	principal, err := s.store.Lookup(ctx, principalID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("CREDENTIALS_LOOKUP_FAILED").
			With("operation", "lookup principal").
			Wrap(err)
	}

	verifier := dummyVerifier
	if principal != nil {
		verifier = principal.Verifier
	}

	ok, verifyErr := VerifyPassword(verifier, password)
	if principal == nil {
		// hide whether the principal exists
		return nil, ErrInvalidCredentials
	}
	if verifyErr != nil {
		return nil, oops.Code("CREDENTIALS_BAD_VERIFIER").
			With("principal_id", principalID).
			Wrap(verifyErr)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return principal, nil
}
