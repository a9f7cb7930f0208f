package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daliphone/money-marketing-room/internal/api/middleware"
)

// Invalidator drops a cached snapshot.
type Invalidator interface {
	Invalidate()
}

// AdminHandler guards the link to the raw sheet editor behind a shared password.
type AdminHandler struct {
	password  string
	editorURL string
	secret    []byte
	ttl       time.Duration
	cache     Invalidator
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(password, editorURL string, secret []byte, ttl time.Duration, cache Invalidator) *AdminHandler {
	return &AdminHandler{password: password, editorURL: editorURL, secret: secret, ttl: ttl, cache: cache}
}

// Unlock trades the shared password for an operator token
func (h *AdminHandler) Unlock(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.password == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Operator gate is not configured"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(h.password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		return
	}

	token, err := middleware.IssueToken(h.secret, "operator", middleware.RoleOperator, h.ttl)
	if err != nil {
		slog.Error("sign operator token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.ttl.Seconds()),
	})
}

// GetEditor returns the link to the backing spreadsheet editor
func (h *AdminHandler) GetEditor(c *gin.Context) {
	if h.editorURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No editor link configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": h.editorURL})
}

// Refresh drops the cached snapshot so the next read sees out-of-band edits
func (h *AdminHandler) Refresh(c *gin.Context) {
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
