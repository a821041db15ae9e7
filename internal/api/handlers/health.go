package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/xi-generator/internal/cache"
	"github.com/stitts-dev/xi-generator/pkg/database"
)

type HealthHandler struct {
	db    *database.DB
	cache *cache.GenerationCache
}

func NewHealthHandler(db *database.DB, generationCache *cache.GenerationCache) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: generationCache,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "xi-generator",
	})
}

// GetReady returns 200 only when the roster store, and the cache when
// configured, answer.
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := gin.H{"database": "ok"}
	ready := true

	if err := h.db.HealthCheck(); err != nil {
		checks["database"] = err.Error()
		ready = false
	}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = err.Error()
			ready = false
		} else {
			checks["cache"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
