package dto

import (
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

type BookingDTO struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	SitterID      string    `json:"sitter_id"`
	PetID         string    `json:"pet_id"`
	PetName       string    `json:"pet_name"`
	SitterName    string    `json:"sitter_name"`
	ClientName    string    `json:"client_name"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Version       int64     `json:"version"`
}

func ToBooking(b models.Booking) BookingDTO {
	return BookingDTO{
		ID:            b.ID,
		ClientID:      b.ClientID,
		SitterID:      b.SitterID,
		PetID:         b.PetID,
		PetName:       b.PetName,
		SitterName:    b.SitterName,
		ClientName:    b.ClientName,
		StartDateTime: b.StartDateTime,
		EndDateTime:   b.EndDateTime,
		Notes:         b.Notes,
		Status:        b.Status,
		Version:       b.Version,
	}
}

func ToBookingList(list []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for _, b := range list {
		out = append(out, ToBooking(b))
	}
	return out
}

// ======================================================
// CALENDAR
// ======================================================

type DayEntryDTO struct {
	Date       string `json:"date"`
	BookingID  string `json:"booking_id"`
	Position   string `json:"position"`
	IsStartDay bool   `json:"is_start_day"`
	IsEndDay   bool   `json:"is_end_day"`
	PetName    string `json:"pet_name,omitempty"`
	Status     string `json:"status,omitempty"`
}

type CellDTO struct {
	Date    *string       `json:"date"`
	Day     int           `json:"day,omitempty"`
	Entries []DayEntryDTO `json:"entries"`
}

type MonthGridDTO struct {
	Year   int       `json:"year"`
	Month  int       `json:"month"`
	Blanks int       `json:"leading_blanks"`
	Cells  []CellDTO `json:"cells"`
}

func ToDayEntries(entries []calendar.BookingDayEntry) []DayEntryDTO {
	out := make([]DayEntryDTO, 0, len(entries))
	for _, e := range entries {
		d := DayEntryDTO{
			Date:       e.Date,
			BookingID:  e.BookingID,
			Position:   string(e.Position),
			IsStartDay: e.IsStartDay,
			IsEndDay:   e.IsEndDay,
		}
		if e.Booking != nil {
			d.PetName = e.Booking.PetName
			d.Status = e.Booking.Status
		}
		out = append(out, d)
	}
	return out
}

func ToMonthGrid(year int, month time.Month, cells []calendar.Cell) MonthGridDTO {
	out := MonthGridDTO{
		Year:  year,
		Month: int(month),
		Cells: make([]CellDTO, 0, len(cells)),
	}
	for _, c := range cells {
		if c.IsBlank() {
			out.Blanks++
			out.Cells = append(out.Cells, CellDTO{Entries: []DayEntryDTO{}})
			continue
		}
		date := c.Date.Format(calendar.DateFormat)
		out.Cells = append(out.Cells, CellDTO{
			Date:    &date,
			Day:     c.Date.Day(),
			Entries: ToDayEntries(c.Entries),
		})
	}
	return out
}
