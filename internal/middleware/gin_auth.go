package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
)

// GinRequire adapts RequireCapability to Gin, so route groups share the
// same gate as plain net/http handlers.
func GinRequire(auth *AuthMiddleware, capability credentials.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := false

		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed = true
			c.Request = r
			c.Next()
		})

		auth.RequireCapability(capability, next).ServeHTTP(c.Writer, c.Request)

		// the gate already wrote a 403; stop the Gin chain
		if !allowed {
			c.Abort()
		}
	}
}
