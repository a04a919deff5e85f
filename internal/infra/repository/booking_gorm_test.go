package repository

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

// Rows come back from timestamptz in the server zone; the calendar must still
// see the days the client booked.
func TestLocalize_KeepsBookedDays(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	sent := models.Booking{
		ID:            "b-1",
		StartDateTime: time.Date(2024, time.March, 30, 22, 0, 0, 0, loc),
		EndDateTime:   time.Date(2024, time.April, 1, 14, 0, 0, 0, loc),
	}

	row := sent
	row.StartDateTime = sent.StartDateTime.UTC()
	row.EndDateTime = sent.EndDateTime.UTC()

	if n := len(calendar.DecomposeBookingIntoDays(row)); n != 2 {
		t.Fatalf("expected the UTC row to lose a day, got %d entries", n)
	}

	localize(&row, loc)

	days := calendar.DecomposeBookingIntoDays(row)
	if len(days) != 3 || days[0].Date != "2024-03-30" || days[2].Date != "2024-04-01" {
		t.Fatalf("unexpected days %+v", days)
	}
	if !row.StartDateTime.Equal(sent.StartDateTime) {
		t.Fatalf("localize must keep the instant")
	}
}

func TestNewBookingGormRepository_DefaultsToUTC(t *testing.T) {
	r := NewBookingGormRepository(nil, nil)
	if r.loc != time.UTC {
		t.Fatalf("expected UTC default, got %v", r.loc)
	}
}
