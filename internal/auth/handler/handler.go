package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matmo1/Another-book-store/internal/auth"
	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/session"
)

type Handler struct {
	authenticator *auth.Authenticator
	cookie        session.CookieOptions
}

func NewHandler(authenticator *auth.Authenticator, cookie session.CookieOptions) *Handler {
	return &Handler{
		authenticator: authenticator,
		cookie:        cookie,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

func (h *Handler) Logout(c *gin.Context) {
	// 1. Read session cookie (same pattern as auth middleware)
	token := session.TokenFromRequest(c.Request, h.cookie)

	// 2. Destroy the session; unknown and expired tokens are fine
	if err := h.authenticator.Logout(c.Request.Context(), token); err != nil {
		logger.Error("logout failed", map[string]any{
			"error": err.Error(),
		})
	}

	// 3. Clear cookie whatever the store said
	session.ClearCookie(c.Writer, h.cookie)

	// 4. Idempotent response
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func isInvalidCredentials(err error) bool {
	return errors.Is(err, credentials.ErrInvalidCredentials)
}
