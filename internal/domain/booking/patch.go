package booking

import (
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
	"github.com/BruksfildServices01/petsit-scheduler/internal/validators"
)

// Patch is a proposed change to a booking. Nil fields are absent.
type Patch struct {
	StartDateTime *time.Time `json:"start_date_time,omitempty"`
	EndDateTime   *time.Time `json:"end_date_time,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	SitterID      *string    `json:"sitter_id,omitempty"`
	PetID         *string    `json:"pet_id,omitempty"`
	Status        *Status    `json:"status,omitempty"`

	// Version is the concurrency token the caller last saw. Zero skips the check.
	Version int64 `json:"version,omitempty"`
}

type Field string

const (
	FieldStartDateTime Field = "start_date_time"
	FieldEndDateTime   Field = "end_date_time"
	FieldNotes         Field = "notes"
	FieldSitterID      Field = "sitter_id"
	FieldPetID         Field = "pet_id"
	FieldStatus        Field = "status"
)

var allFields = []Field{
	FieldStartDateTime,
	FieldEndDateTime,
	FieldNotes,
	FieldSitterID,
	FieldPetID,
	FieldStatus,
}

func (p Patch) Has(f Field) bool {
	switch f {
	case FieldStartDateTime:
		return p.StartDateTime != nil
	case FieldEndDateTime:
		return p.EndDateTime != nil
	case FieldNotes:
		return p.Notes != nil
	case FieldSitterID:
		return p.SitterID != nil
	case FieldPetID:
		return p.PetID != nil
	case FieldStatus:
		return p.Status != nil
	}
	return false
}

func (p Patch) IsEmpty() bool {
	for _, f := range allFields {
		if p.Has(f) {
			return false
		}
	}
	return true
}

// ===============================
// Field-permission matrix
// ===============================

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

type Permission int

const (
	Forbidden Permission = iota
	Permitted
	Required
)

type matrixKey struct {
	Role Role
	Mode Mode
}

// fieldMatrix has one row per (role, mode) that may submit anything at all.
// A missing field in a row means forbidden.
var fieldMatrix = map[matrixKey]map[Field]Permission{
	{RoleClient, ModeCreate}: {
		FieldStartDateTime: Required,
		FieldEndDateTime:   Required,
		FieldNotes:         Permitted,
		FieldSitterID:      Required,
		FieldPetID:         Required,
	},
	{RoleClient, ModeUpdate}: {
		FieldStartDateTime: Permitted,
		FieldEndDateTime:   Permitted,
		FieldNotes:         Permitted,
	},
	{RoleSitter, ModeUpdate}: {
		FieldStatus: Required,
	},
}

// FieldPermission reports what role may do with f in mode.
func FieldPermission(role Role, mode Mode, f Field) Permission {
	return fieldMatrix[matrixKey{role, mode}][f]
}

// ===============================
// Validation
// ===============================

// ValidatePatch decides whether actor may send p against current (nil on
// create) and returns the patch to forward to the repository. Forbidden
// fields are rejected, never dropped.
func ValidatePatch(
	current *models.Booking,
	actor Actor,
	p Patch,
) (Patch, error) {

	if err := actor.Validate(); err != nil {
		return Patch{}, err
	}

	mode := ModeUpdate
	if current == nil {
		mode = ModeCreate
	}

	row, ok := fieldMatrix[matrixKey{actor.Role, mode}]
	if !ok {
		return Patch{}, httperr.ErrBusiness("role_cannot_create")
	}

	if current != nil {
		if err := assertOwner(current, actor); err != nil {
			return Patch{}, err
		}
	}

	// status goes through the transition graph before anything else
	if p.Status != nil && row[FieldStatus] != Forbidden {
		if err := CanTransition(Status(current.Status), *p.Status); err != nil {
			return Patch{}, err
		}
	}

	for _, f := range allFields {
		perm := row[f]
		if perm == Forbidden && p.Has(f) {
			return Patch{}, httperr.ErrValidation(string(f), "field_forbidden")
		}
		if perm == Required && !p.Has(f) {
			return Patch{}, httperr.ErrValidation(string(f), "field_required")
		}
	}

	if mode == ModeUpdate {
		if p.IsEmpty() {
			return Patch{}, httperr.ErrBusiness("empty_patch")
		}
		if actor.IsClient() && Status(current.Status) != StatusPending {
			return Patch{}, httperr.ErrBusiness("booking_locked")
		}
	}

	if mode == ModeCreate {
		if validators.IsBlank(*p.SitterID) {
			return Patch{}, httperr.ErrValidation(string(FieldSitterID), "field_required")
		}
		if validators.IsBlank(*p.PetID) {
			return Patch{}, httperr.ErrValidation(string(FieldPetID), "field_required")
		}
	}

	if p.Has(FieldStartDateTime) || p.Has(FieldEndDateTime) {
		start, end := effectiveRange(current, p)
		if !end.After(start) {
			return Patch{}, httperr.ErrValidation(string(FieldEndDateTime), "invalid_date_range")
		}
	}

	if p.Notes != nil && !validators.WithinLength(*p.Notes, validators.MaxNotesLength) {
		return Patch{}, httperr.ErrValidation(string(FieldNotes), "notes_too_long")
	}

	out := p
	if mode == ModeCreate {
		st := InitialStatus()
		out.Status = &st
		out.Version = 0
	}
	return out, nil
}

func assertOwner(b *models.Booking, actor Actor) error {
	switch actor.Role {
	case RoleClient:
		if b.ClientID == actor.ID {
			return nil
		}
	case RoleSitter:
		if b.SitterID == actor.ID {
			return nil
		}
	}
	return httperr.ErrBusiness("not_owner")
}

// effectiveRange merges the patched bounds over the current ones.
func effectiveRange(current *models.Booking, p Patch) (time.Time, time.Time) {
	var start, end time.Time
	if current != nil {
		start, end = current.StartDateTime, current.EndDateTime
	}
	if p.StartDateTime != nil {
		start = *p.StartDateTime
	}
	if p.EndDateTime != nil {
		end = *p.EndDateTime
	}
	return start, end
}
