package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc checks an optional backing service such as the news cache.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	cache PingFunc
}

func NewHealthHandler(cache PingFunc) *HealthHandler {
	return &HealthHandler{cache: cache}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "cache": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.cache(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"cache":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy", "cache": "connected"})
}
