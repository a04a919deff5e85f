package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
	"github.com/BruksfildServices01/petsit-scheduler/internal/validators"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

type Mode string

const (
	ModeNone   Mode = "none"
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

type Prefill struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Action is what the review form should offer for a booking.
type Action struct {
	Mode     Mode     `json:"mode"`
	ReviewID string   `json:"review_id,omitempty"`
	Prefill  *Prefill `json:"prefill,omitempty"`
}

type Submission struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Offered reports whether any review action applies, without any lookup.
func Offered(b *models.Booking, actor booking.Actor) bool {
	return b != nil &&
		actor.IsClient() &&
		b.ClientID == actor.ID &&
		booking.Status(b.Status) == booking.StatusCompleted
}

// GetReviewAction picks none, create or update. A missing review is the
// create signal, not an error.
func GetReviewAction(
	ctx context.Context,
	finder Finder,
	b *models.Booking,
	actor booking.Actor,
) (Action, error) {

	if !Offered(b, actor) {
		return Action{Mode: ModeNone}, nil
	}

	existing, err := finder.GetByBooking(ctx, b.ID)
	if errors.Is(err, ErrNotFound) || (err == nil && existing == nil) {
		return Action{
			Mode:    ModeCreate,
			Prefill: &Prefill{Rating: DefaultRating},
		}, nil
	}
	if err != nil {
		return Action{}, httperr.ErrRemote("get_review", err)
	}

	return Action{
		Mode:     ModeUpdate,
		ReviewID: existing.ID,
		Prefill: &Prefill{
			Rating:  existing.Rating,
			Comment: existing.Comment,
		},
	}, nil
}

func ValidateSubmission(s Submission) error {
	if !validators.InRange(s.Rating, MinRating, MaxRating) {
		return httperr.ErrValidation("rating", "rating_out_of_range")
	}
	if validators.IsBlank(s.Comment) {
		return httperr.ErrValidation("comment", "comment_required")
	}
	if !validators.WithinLength(s.Comment, validators.MaxCommentLength) {
		return httperr.ErrValidation("comment", "comment_too_long")
	}
	return nil
}

// Normalize trims the comment before it is stored.
func (s Submission) Normalize() Submission {
	s.Comment = strings.TrimSpace(s.Comment)
	return s
}

func NewReview(b *models.Booking, s Submission, now time.Time) *models.Review {
	return &models.Review{
		ID:        uuid.NewString(),
		BookingID: b.ID,
		SitterID:  b.SitterID,
		ClientID:  b.ClientID,
		Rating:    s.Rating,
		Comment:   s.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
