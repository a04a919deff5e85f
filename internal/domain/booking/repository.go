package booking

import (
	"context"

	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// Repository is the booking collaborator the engine drives. Implementations
// only move data; every rule lives in ValidatePatch.
type Repository interface {
	// ListMine returns the bookings where the actor is the client or the sitter,
	// with the display projections filled in.
	ListMine(
		ctx context.Context,
		actor Actor,
	) ([]models.Booking, error)

	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	// Update applies p to booking id. A non-zero expectedVersion that does not
	// match the stored one fails with a conflict.
	Update(
		ctx context.Context,
		id string,
		expectedVersion int64,
		p Patch,
	) (*models.Booking, error)

	Delete(
		ctx context.Context,
		id string,
	) error
}
