package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

var (
	client = Actor{ID: "client-1", Role: RoleClient}
	sitter = Actor{ID: "sitter-1", Role: RoleSitter}
)

func ptr[T any](v T) *T { return &v }

func at(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

func stored(status Status) *models.Booking {
	return &models.Booking{
		ID:            "b-1",
		ClientID:      client.ID,
		SitterID:      sitter.ID,
		PetID:         "pet-1",
		StartDateTime: at(30, 10),
		EndDateTime:   at(31, 18),
		Status:        string(status),
		Version:       3,
	}
}

func createPatch() Patch {
	return Patch{
		StartDateTime: ptr(at(10, 9)),
		EndDateTime:   ptr(at(12, 9)),
		SitterID:      ptr(sitter.ID),
		PetID:         ptr("pet-1"),
		Notes:         ptr("feed twice"),
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %q, got %v", code, err)
	}
}

func TestValidatePatch_ClientCreate(t *testing.T) {
	out, err := ValidatePatch(nil, client, createPatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status == nil || *out.Status != StatusPending {
		t.Fatalf("expected create to start pending, got %v", out.Status)
	}
}

func TestValidatePatch_CreateRejectsClientSuppliedStatus(t *testing.T) {
	p := createPatch()
	p.Status = ptr(StatusAccepted)

	_, err := ValidatePatch(nil, client, p)
	assertCode(t, err, "field_forbidden")
}

func TestValidatePatch_CreateRequiresFields(t *testing.T) {
	p := createPatch()
	p.PetID = nil
	_, err := ValidatePatch(nil, client, p)
	assertCode(t, err, "field_required")

	p = createPatch()
	p.SitterID = ptr("  ")
	_, err = ValidatePatch(nil, client, p)
	assertCode(t, err, "field_required")
}

func TestValidatePatch_SitterCannotCreate(t *testing.T) {
	_, err := ValidatePatch(nil, sitter, createPatch())
	assertCode(t, err, "role_cannot_create")
}

func TestValidatePatch_ClientUpdateForbidsIdentityFields(t *testing.T) {
	for _, p := range []Patch{
		{SitterID: ptr("sitter-2")},
		{PetID: ptr("pet-2")},
		{Status: ptr(StatusAccepted)},
		{Notes: ptr("x"), Status: ptr(StatusAccepted)},
	} {
		_, err := ValidatePatch(stored(StatusPending), client, p)
		assertCode(t, err, "field_forbidden")
	}
}

func TestValidatePatch_ClientEditOnlyWhilePending(t *testing.T) {
	_, err := ValidatePatch(stored(StatusAccepted), client, Patch{Notes: ptr("late")})
	assertCode(t, err, "booking_locked")

	if _, err := ValidatePatch(stored(StatusPending), client, Patch{Notes: ptr("ok")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePatch_EmptyUpdate(t *testing.T) {
	_, err := ValidatePatch(stored(StatusPending), client, Patch{})
	assertCode(t, err, "empty_patch")
}

func TestValidatePatch_NotOwner(t *testing.T) {
	other := Actor{ID: "client-2", Role: RoleClient}
	_, err := ValidatePatch(stored(StatusPending), other, Patch{Notes: ptr("x")})
	assertCode(t, err, "not_owner")

	otherSitter := Actor{ID: "sitter-2", Role: RoleSitter}
	_, err = ValidatePatch(stored(StatusPending), otherSitter, Patch{Status: ptr(StatusAccepted)})
	assertCode(t, err, "not_owner")
}

func TestValidatePatch_SitterStatusOnly(t *testing.T) {
	out, err := ValidatePatch(stored(StatusPending), sitter, Patch{Status: ptr(StatusAccepted)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Has(FieldNotes) || out.Has(FieldStartDateTime) {
		t.Fatalf("sitter patch must carry status only, got %+v", out)
	}

	_, err = ValidatePatch(stored(StatusPending), sitter, Patch{
		Status: ptr(StatusAccepted),
		Notes:  ptr("see you"),
	})
	assertCode(t, err, "field_forbidden")

	_, err = ValidatePatch(stored(StatusPending), sitter, Patch{Notes: ptr("see you")})
	if err == nil {
		t.Fatalf("expected sitter notes-only patch to fail")
	}
}

// A sitter cannot move an accepted booking back to rejected.
func TestValidatePatch_SitterInvalidTransition(t *testing.T) {
	_, err := ValidatePatch(stored(StatusAccepted), sitter, Patch{Status: ptr(StatusRejected)})
	if !httperr.IsKind(err, httperr.KindInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	_, err = ValidatePatch(stored(StatusCompleted), sitter, Patch{Status: ptr(StatusCompleted)})
	if !httperr.IsKind(err, httperr.KindInvalidTransition) {
		t.Fatalf("expected invalid transition from terminal, got %v", err)
	}
}

func TestValidatePatch_DateRange(t *testing.T) {
	// merged with the stored start 30th 10:00
	_, err := ValidatePatch(stored(StatusPending), client, Patch{EndDateTime: ptr(at(30, 10))})
	assertCode(t, err, "invalid_date_range")

	// same day, one hour later, is fine
	if _, err := ValidatePatch(stored(StatusPending), client, Patch{EndDateTime: ptr(at(30, 11))}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := createPatch()
	p.EndDateTime = ptr(at(9, 9))
	_, err = ValidatePatch(nil, client, p)
	assertCode(t, err, "invalid_date_range")
}

func TestValidatePatch_NotesTooLong(t *testing.T) {
	_, err := ValidatePatch(stored(StatusPending), client, Patch{Notes: ptr(strings.Repeat("ñ", 1001))})
	assertCode(t, err, "notes_too_long")

	if _, err := ValidatePatch(stored(StatusPending), client, Patch{Notes: ptr(strings.Repeat("ñ", 1000))}); err != nil {
		t.Fatalf("1000 runes should pass: %v", err)
	}
}

func TestValidatePatch_InvalidActor(t *testing.T) {
	_, err := ValidatePatch(nil, Actor{ID: "x", Role: "admin"}, createPatch())
	assertCode(t, err, "unknown_role")

	_, err = ValidatePatch(nil, Actor{Role: RoleClient}, createPatch())
	assertCode(t, err, "actor_required")
}

func TestFieldPermission(t *testing.T) {
	if FieldPermission(RoleClient, ModeCreate, FieldSitterID) != Required {
		t.Fatalf("client create must require sitter_id")
	}
	if FieldPermission(RoleClient, ModeUpdate, FieldStatus) != Forbidden {
		t.Fatalf("client update must forbid status")
	}
	if FieldPermission(RoleSitter, ModeCreate, FieldNotes) != Forbidden {
		t.Fatalf("sitter has no create row")
	}
}

func TestApply_BumpsVersionKeepsIdentity(t *testing.T) {
	b := stored(StatusPending)
	now := at(1, 0)
	Apply(b, Patch{Status: ptr(StatusAccepted)}, now)

	if b.Status != string(StatusAccepted) || b.Version != 4 || !b.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected booking after apply: %+v", b)
	}
	if b.ClientID != client.ID || b.SitterID != sitter.ID || b.PetID != "pet-1" {
		t.Fatalf("identity fields changed: %+v", b)
	}
}

func TestNewBooking(t *testing.T) {
	p, err := ValidatePatch(nil, client, createPatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := NewBooking(client, p, at(1, 0))
	if b.ID == "" || b.ClientID != client.ID || b.Status != "pending" || b.Version != 1 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if b.Notes != "feed twice" {
		t.Fatalf("notes not copied: %q", b.Notes)
	}
}

func TestValidatePatch_RejectedIsTerminal(t *testing.T) {
	b := stored(StatusPending)

	p, err := ValidatePatch(b, sitter, Patch{Status: ptr(StatusRejected)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Apply(b, p, at(1, 0))
	if b.Status != string(StatusRejected) {
		t.Fatalf("expected rejected, got %s", b.Status)
	}

	_, err = ValidatePatch(b, sitter, Patch{Status: ptr(StatusAccepted)})
	if !httperr.IsKind(err, httperr.KindInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestValidatePatch_SitterStatusClosure(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}

	for _, from := range all {
		for _, to := range all {
			out, err := ValidatePatch(stored(from), sitter, Patch{Status: ptr(to)})
			if from.CanTransitionTo(to) {
				if err != nil {
					t.Fatalf("%s -> %s: expected accepted patch, got %v", from, to, err)
				}
				if out.Status == nil || *out.Status != to {
					t.Fatalf("%s -> %s: status not forwarded", from, to)
				}
				continue
			}
			if !httperr.IsKind(err, httperr.KindInvalidTransition) {
				t.Fatalf("%s -> %s: expected invalid transition, got %v", from, to, err)
			}
		}
	}
}

func TestValidatePatch_SitterCannotTouchOtherFields(t *testing.T) {
	cases := map[string]Patch{
		"start":       {Status: ptr(StatusAccepted), StartDateTime: ptr(at(29, 10))},
		"end":         {Status: ptr(StatusAccepted), EndDateTime: ptr(at(31, 20))},
		"notes":       {Status: ptr(StatusAccepted), Notes: ptr("see you")},
		"sitter":      {Status: ptr(StatusAccepted), SitterID: ptr("sitter-2")},
		"pet":         {Status: ptr(StatusAccepted), PetID: ptr("pet-2")},
		"start alone": {StartDateTime: ptr(at(29, 10))},
	}

	for name, p := range cases {
		_, err := ValidatePatch(stored(StatusPending), sitter, p)
		if !httperr.IsBusiness(err, "field_forbidden") {
			t.Fatalf("%s: expected field_forbidden, got %v", name, err)
		}
	}
}
