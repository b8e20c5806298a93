// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessChecker reports whether dependencies needed to serve are reachable.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
	LiveAvailable() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(checker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic. The
// live source is reported but never fails the probe.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	live := "unconfigured"
	if h.checker.LiveAvailable() {
		live = "configured"
	}

	if err := h.checker.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "DOWN",
			"static": "unhealthy",
			"live":   live,
			"error":  err.Error(),
			"time":   time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"static": "healthy",
		"live":   live,
		"time":   time.Now(),
	})
}
