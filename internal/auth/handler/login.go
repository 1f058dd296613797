package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/session"
)

type loginRequest struct {
	PrincipalID string `json:"principal_id"`
	Secret      string `json:"secret"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, sess, err := h.authenticator.Login(
		c.Request.Context(),
		req.PrincipalID,
		req.Secret,
	)
	if isInvalidCredentials(err) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		logger.Error("login failed", map[string]any{
			"principal_id": req.PrincipalID,
			"error":        err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	session.SetCookie(c.Writer, token, sess.AbsoluteExpiresAt, h.cookie)

	c.JSON(http.StatusOK, gin.H{
		"status":       "logged_in",
		"principal_id": sess.PrincipalID,
		"expires_at":   sess.ExpiresAt,
	})
}
