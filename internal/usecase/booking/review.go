package booking

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// ======================================================
// REVIEWS
// ======================================================

func (c *Controller) ReviewAction(ctx context.Context, bookingID string) (review.Action, error) {
	b, err := c.lookup(ctx, bookingID)
	if err != nil {
		return review.Action{}, err
	}

	ctx, span := c.startSpan(ctx, "reviews.get")
	action, err := review.GetReviewAction(ctx, c.reviews, &b, c.actor)
	endSpan(span, err)
	return action, err
}

// SubmitReview creates or updates the booking's review, whichever the gate
// offers. The booking itself is not touched.
func (c *Controller) SubmitReview(ctx context.Context, bookingID string, s review.Submission) (*models.Review, error) {
	b, err := c.lookup(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// create or update is decided under the lock
	unlock, err := c.locker.Lock(ctx, "review:"+bookingID)
	if err != nil {
		return nil, httperr.ErrRemote("lock", err)
	}
	defer unlock()

	action, err := c.ReviewAction(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if action.Mode == review.ModeNone {
		return nil, httperr.ErrBusiness("review_not_allowed")
	}

	if err := review.ValidateSubmission(s); err != nil {
		return nil, err
	}
	s = s.Normalize()

	var (
		out   *models.Review
		op    string
		event string
	)

	ctx, span := c.startSpan(ctx, "reviews.submit")
	switch action.Mode {
	case review.ModeCreate:
		op, event = "create_review", "review.created"
		out = review.NewReview(&b, s, c.now())
		err = c.reviews.Create(ctx, out)
	default:
		op, event = "update_review", "review.updated"
		out, err = c.reviews.Update(ctx, action.ReviewID, s)
	}
	endSpan(span, err)

	if err != nil {
		c.log.Warn("review submission failed",
			slog.String("booking_id", bookingID),
			slog.String("op", op),
			slog.Any("error", err),
		)
		return nil, httperr.ErrRemote(op, err)
	}

	c.dispatch(event, "review", out.ID, map[string]any{
		"booking_id": bookingID,
		"rating":     out.Rating,
	})
	c.notify(Change{Kind: ChangeReview, Action: op, BookingID: bookingID, Count: len(c.Bookings())})

	return out, nil
}
