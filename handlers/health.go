package handlers

import (
	"net/http"

	"homepro/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last Mongo and Redis check.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	status := h.Monitor.Status()
	if status.CheckedAt.IsZero() {
		status = h.Monitor.Check(c.Request.Context())
	}
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "services": status})
}
