package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petsit-scheduler/internal/dto"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httpresp"
)

// ======================================================
// MONTH GRID
// ======================================================

func (h *BookingHandler) Calendar(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	year, month, err := yearMonth(c.Query("year"), c.Query("month"), h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := ctl.Load(c.Request.Context()); err != nil {
		httperr.FromError(c, err)
		return
	}
	if err := ctl.ShowCalendar(year, month); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ToMonthGrid(year, month, ctl.MonthGrid(year, month)))
}

// ======================================================
// DAYS OF ONE BOOKING
// ======================================================

func (h *BookingHandler) Days(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	entries, err := ctl.Days(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, dto.ToDayEntries(entries))
}
