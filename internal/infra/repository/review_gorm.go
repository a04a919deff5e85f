package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

type ReviewGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db, now: time.Now}
}

func (r *ReviewGormRepository) GetByBooking(
	ctx context.Context,
	bookingID string,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&rv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) Create(
	ctx context.Context,
	rv *models.Review,
) error {
	err := r.db.WithContext(ctx).Create(rv).Error
	if isUniqueViolation(err) {
		return httperr.ErrConflict("review_exists")
	}
	return err
}

func (r *ReviewGormRepository) Update(
	ctx context.Context,
	reviewID string,
	s review.Submission,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("review_not_found")
		}
		return nil, err
	}

	rv.Rating = s.Rating
	rv.Comment = s.Comment
	rv.UpdatedAt = r.now()

	if err := r.db.WithContext(ctx).
		Model(&rv).
		Select("rating", "comment", "updated_at").
		Updates(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Compile-time check
var _ review.Repository = (*ReviewGormRepository)(nil)
