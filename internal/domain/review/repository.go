package review

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// ErrNotFound is how a Finder says the booking has no review yet.
var ErrNotFound = errors.New("review not found")

type Finder interface {
	GetByBooking(
		ctx context.Context,
		bookingID string,
	) (*models.Review, error)
}

type Repository interface {
	Finder

	Create(
		ctx context.Context,
		r *models.Review,
	) error

	Update(
		ctx context.Context,
		reviewID string,
		s Submission,
	) (*models.Review, error)
}
