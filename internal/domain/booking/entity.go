package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// NewBooking builds the record for a create patch already accepted by ValidatePatch.
func NewBooking(actor Actor, p Patch, now time.Time) *models.Booking {
	b := &models.Booking{
		ID:            uuid.NewString(),
		ClientID:      actor.ID,
		SitterID:      *p.SitterID,
		PetID:         *p.PetID,
		StartDateTime: *p.StartDateTime,
		EndDateTime:   *p.EndDateTime,
		Status:        string(InitialStatus()),
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	return b
}

// Apply copies the mutable fields of p onto b and bumps the version.
// Identity fields are never touched.
func Apply(b *models.Booking, p Patch, now time.Time) {
	if p.StartDateTime != nil {
		b.StartDateTime = *p.StartDateTime
	}
	if p.EndDateTime != nil {
		b.EndDateTime = *p.EndDateTime
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.Status != nil {
		b.Status = string(*p.Status)
	}
	b.Version++
	b.UpdatedAt = now
}
