package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ERROR", "message": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
