package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petsit-scheduler/internal/realtime"
)

// Stream upgrades to a websocket that receives the session's changes.
func (h *BookingHandler) Stream(hub *realtime.Hub, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl, ok := h.session(c)
		if !ok {
			return
		}

		if err := hub.Serve(c.Writer, c.Request, ctl); err != nil {
			log.Warn("websocket upgrade failed", slog.Any("error", err))
		}
		// idle eviction counts from the moment the stream went away
		h.sessions.Touch(ctl.Actor().ID)
	}
}
