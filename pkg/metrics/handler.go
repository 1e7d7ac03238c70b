package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"filter_evaluations_total": GetFilterEvaluations(),
		"location_resolved_total":  GetLocationResolved(),
		"location_fallbacks_total": GetLocationFallbacks(),
		"snapshots_total":          GetSnapshots(),
		"snapshot_fails_total":     GetSnapshotFails(),
		"active_sessions":          GetActiveSessions(),
		"events":                   GetSystemMetrics(),
		"uptime_seconds":           int64(GetUptime().Seconds()),
	})
}
