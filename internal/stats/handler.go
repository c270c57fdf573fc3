package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/logging"
)

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(s *Scheduler) *Handler {
	return &Handler{scheduler: s}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/stats", h.GetStats)
}

// GetStats returns the latest scheduled snapshot. Without a schedule, or
// before the first scheduled run, it collects one for the request.
func (h *Handler) GetStats(c *gin.Context) {
	if h.scheduler.Scheduled() {
		if snap, ok := h.scheduler.Latest(); ok {
			c.JSON(http.StatusOK, snap)
			return
		}
	}

	snap, err := h.scheduler.Refresh(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("stats collection failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph statistics unavailable"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
