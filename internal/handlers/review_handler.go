package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httpresp"
)

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *BookingHandler) ReviewAction(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	action, err := ctl.ReviewAction(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, action)
}

func (h *BookingHandler) SubmitReview(c *gin.Context) {
	ctl, ok := h.session(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rv, err := ctl.SubmitReview(c.Request.Context(), c.Param("id"), review.Submission{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, rv)
}
