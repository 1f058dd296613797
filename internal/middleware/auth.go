package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/matmo1/Another-book-store/internal/auth"
	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/session"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the authorized principal from context.
func PrincipalFromContext(ctx context.Context) (*credentials.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*credentials.Principal)
	return p, ok
}

type AuthMiddleware struct {
	Gate   *auth.Gate
	Cookie session.CookieOptions
}

func NewAuthMiddleware(gate *auth.Gate, cookie session.CookieOptions) *AuthMiddleware {
	return &AuthMiddleware{Gate: gate, Cookie: cookie}
}

// RequireCapability rejects requests whose session is missing, invalid,
// expired or lacks capability. Rejected requests never reach next.
func (a *AuthMiddleware) RequireCapability(capability credentials.Capability, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		token := session.TokenFromRequest(r, a.Cookie)

		// 2. Ask the gate; unauthenticated and unauthorized look the same
		principal, err := a.Gate.Authorize(r.Context(), token, capability)
		if err != nil {
			forbidden(w)
			return
		}

		// 3. Attach principal to context
		ctx := context.WithValue(r.Context(), principalKey, principal)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
}
