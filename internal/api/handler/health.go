package handler

import (
	"net/http"
	"time"

	"github.com/CHANDRIKA5189/v0-image-caption-generation/internal/selector"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the caption service.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health handler whose uptime starts now.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"captions":       selector.NumCategories * selector.NumVariants,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
