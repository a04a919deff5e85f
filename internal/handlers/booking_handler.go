package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/dto"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/petsit-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/petsit-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	sessions *ucBooking.Registry
	loc      *time.Location
}

func NewBookingHandler(sessions *ucBooking.Registry, loc *time.Location) *BookingHandler {
	return &BookingHandler{
		sessions: sessions,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// PatchRequest carries any subset of booking fields. Which ones are allowed
// is decided by the domain rules, not by binding tags.
type PatchRequest struct {
	StartDateTime *string `json:"start_date_time"`
	EndDateTime   *string `json:"end_date_time"`
	Notes         *string `json:"notes"`
	SitterID      *string `json:"sitter_id"`
	PetID         *string `json:"pet_id"`
	Status        *string `json:"status"`
	Version       int64   `json:"version"`
}

type ValidateRequest struct {
	BookingID string `json:"booking_id"`
	PatchRequest
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r PatchRequest) toPatch(loc *time.Location) (domain.Patch, error) {
	start, err := parseOptionalDateTime(string(domain.FieldStartDateTime), r.StartDateTime, loc)
	if err != nil {
		return domain.Patch{}, err
	}
	end, err := parseOptionalDateTime(string(domain.FieldEndDateTime), r.EndDateTime, loc)
	if err != nil {
		return domain.Patch{}, err
	}

	p := domain.Patch{
		StartDateTime: start,
		EndDateTime:   end,
		Notes:         r.Notes,
		SitterID:      r.SitterID,
		PetID:         r.PetID,
		Version:       r.Version,
	}

	if r.Status != nil {
		st, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return domain.Patch{}, httperr.ErrValidation(string(domain.FieldStatus), "unknown_status")
		}
		p.Status = &st
	}
	return p, nil
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) session(c *gin.Context) (*ucBooking.Controller, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "actor_not_in_context", "Not authenticated.")
		return nil, false
	}
	return h.sessions.Get(actor), true
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	if err := ctl.Load(c.Request.Context()); err != nil {
		httperr.FromError(c, err)
		return
	}

	ctl.ShowList()
	httpresp.List(c, dto.ToBookingList(ctl.Bookings()))
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	p, err := req.toPatch(h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	b, err := ctl.Create(c.Request.Context(), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.ToBooking(*b))
}

// ======================================================
// DETAIL / EDIT VIEW
// ======================================================

func (h *BookingHandler) Detail(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := ctl.OpenDetail(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	b, _ := ctl.Booking(id)
	httpresp.OK(c, gin.H{
		"booking":             dto.ToBooking(b),
		"allowed_transitions": domain.AllowedTransitions(domain.Status(b.Status)),
	})
}

func (h *BookingHandler) OpenEdit(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	if err := ctl.OpenEdit(c.Request.Context(), c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, ctl.View())
}

func (h *BookingHandler) View(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}
	httpresp.OK(c, ctl.View())
}

func (h *BookingHandler) CloseView(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}
	ctl.CloseView()
	httpresp.OK(c, ctl.View())
}

// ======================================================
// EDIT (client)
// ======================================================

func (h *BookingHandler) Edit(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	p, err := req.toPatch(h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	b, err := ctl.Edit(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ToBooking(*b))
}

// ======================================================
// STATUS (sitter)
// ======================================================

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.FromError(c, httperr.ErrValidation("status", "unknown_status"))
		return
	}

	b, err := ctl.ChangeStatus(c.Request.Context(), c.Param("id"), to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ToBooking(*b))
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	confirmed := c.Query("confirm") == "true"
	if err := ctl.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// VALIDATE (dry run)
// ======================================================

func (h *BookingHandler) Validate(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	p, err := req.toPatch(h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	clean, err := ctl.Validate(c.Request.Context(), req.BookingID, p)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"valid": true, "patch": clean})
}
