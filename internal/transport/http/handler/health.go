package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pochy-chat/internal/bootstrap"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	app *bootstrap.App
	now func() time.Time
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app, now: time.Now}
}

// Probe handles GET /api/chat.
func (h *HealthHandler) Probe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   h.app.Config.App.ServiceName,
		"timestamp": h.now().UTC().Format(timestampLayout),
	})
}

// Check handles GET /healthz. It answers 503 until an API key is configured.
func (h *HealthHandler) Check(c *gin.Context) {
	ready := h.app.Config.Ready()
	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":        h.app.Config.App.Name,
		"env":        h.app.Config.App.Env,
		"uptime_sec": int(time.Since(h.app.StartedAt).Seconds()),
		"ready":      ready,
		"model":      h.app.Config.LLM.Model,
	})
}
