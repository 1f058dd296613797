package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/middleware"
)

type Handler struct {
	store Store
	auth  *middleware.AuthMiddleware
}

func NewHandler(store Store, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{store: store, auth: auth}
}

// RegisterRoutes mounts public reads and admin-gated writes under /books.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	books := r.Group("/books")
	books.GET("", h.list)
	books.GET("/:id", h.get)

	admin := books.Group("", middleware.GinRequire(h.auth, credentials.CapabilityAdmin))
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	books, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get", err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *Handler) create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	book, err := h.store.Insert(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "insert", err)
		return
	}

	logger.Info("book created", map[string]any{
		"book_id":      book.ID,
		"principal_id": principalID(c),
	})

	c.JSON(http.StatusCreated, book)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}

	book, err := GuardedMutation(c.Request.Context(), h.store, id,
		func(ctx context.Context, _ *Book) (*Book, error) {
			return h.store.Update(ctx, id, in)
		},
	)
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	logger.Info("book updated", map[string]any{
		"book_id":      id,
		"principal_id": principalID(c),
	})

	c.JSON(http.StatusOK, book)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	_, err := GuardedMutation(c.Request.Context(), h.store, id,
		func(ctx context.Context, current *Book) (*Book, error) {
			return current, h.store.Delete(ctx, id)
		},
	)
	if err != nil {
		h.fail(c, "delete", err)
		return
	}

	logger.Info("book deleted", map[string]any{
		"book_id":      id,
		"principal_id": principalID(c),
	})

	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}

	logger.Error("catalog store failed", map[string]any{
		"operation": op,
		"error":     err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func bindInput(c *gin.Context) (BookInput, bool) {
	var in BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return BookInput{}, false
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return BookInput{}, false
	}
	return in, true
}

func principalID(c *gin.Context) string {
	if p, ok := middleware.PrincipalFromContext(c.Request.Context()); ok {
		return p.ID
	}
	return ""
}
