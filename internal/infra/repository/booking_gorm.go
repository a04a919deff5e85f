package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

type BookingGormRepository struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewBookingGormRepository reads timestamps back in loc, the zone the
// service parses naive date-times in. Postgres returns instants only.
func NewBookingGormRepository(db *gorm.DB, loc *time.Location) *BookingGormRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingGormRepository{db: db, loc: loc, now: time.Now}
}

// localize puts the booking's bounds back in loc so their calendar days
// match what the client sent.
func localize(b *models.Booking, loc *time.Location) {
	b.StartDateTime = b.StartDateTime.In(loc)
	b.EndDateTime = b.EndDateTime.In(loc)
}

// --------------------------------------------------
// List
// --------------------------------------------------

func (r *BookingGormRepository) ListMine(
	ctx context.Context,
	actor domain.Actor,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(
			"bookings.*, " +
				"COALESCE(pets.name, '') AS pet_name, " +
				"COALESCE(sitters.name, '') AS sitter_name, " +
				"COALESCE(clients.name, '') AS client_name",
		).
		Joins("LEFT JOIN pets ON pets.id = bookings.pet_id").
		Joins("LEFT JOIN users AS sitters ON sitters.id = bookings.sitter_id").
		Joins("LEFT JOIN users AS clients ON clients.id = bookings.client_id")

	switch actor.Role {
	case domain.RoleSitter:
		q = q.Where("bookings.sitter_id = ?", actor.ID)
	default:
		q = q.Where("bookings.client_id = ?", actor.ID)
	}

	var out []models.Booking
	if err := q.Order("bookings.start_date_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		localize(&out[i], r.loc)
	}
	return out, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// --------------------------------------------------
// Update (optimistic version check under row lock)
// --------------------------------------------------

func (r *BookingGormRepository) Update(
	ctx context.Context,
	id string,
	expectedVersion int64,
	p domain.Patch,
) (*models.Booking, error) {

	var updated models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("booking_not_found")
			}
			return err
		}

		if expectedVersion != 0 && b.Version != expectedVersion {
			return httperr.ErrConflict("stale_version")
		}

		domain.Apply(&b, p, r.now())

		if err := tx.
			Model(&b).
			Select("start_date_time", "end_date_time", "notes", "status", "version", "updated_at").
			Updates(&b).Error; err != nil {
			return err
		}

		localize(&b, r.loc)
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id string,
) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("booking_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
