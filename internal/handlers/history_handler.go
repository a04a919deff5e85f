package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

type HistoryReader interface {
	ListForEntity(ctx context.Context, entity, entityID string, limit int) ([]models.AuditLog, error)
}

// ======================================================
// HISTORY
// ======================================================

// History lists the audit trail of a booking the actor can see.
func (h *BookingHandler) History(reader HistoryReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl, ok := h.session(c)
		if !ok {
			return
		}
		id := c.Param("id")

		// only bookings on the actor's own list
		if _, err := ctl.Lookup(c.Request.Context(), id); err != nil {
			httperr.FromError(c, err)
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

		logs, err := reader.ListForEntity(c.Request.Context(), "booking", id, limit)
		if err != nil {
			httperr.Internal(c, "history_list_failed", "Could not list booking history.")
			return
		}

		httpresp.List(c, logs)
	}
}
