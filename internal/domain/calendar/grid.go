package calendar

import (
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

const DaysPerWeek = 7

// Cell is one slot of the month grid. Leading blanks have a nil Date.
type Cell struct {
	Date    *time.Time        `json:"date"`
	Entries []BookingDayEntry `json:"entries"`
}

func (c Cell) IsBlank() bool {
	return c.Date == nil
}

// FirstWeekday is the weekday of the 1st, Sunday = 0.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DaysIn lets time.Date normalise day 0 of the next month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid lays out the month as leading blanks followed by one cell
// per day. There are no trailing blanks and no days from the neighbouring
// months, so the part of a booking outside the month is not shown.
// Entries on a day keep the order of bookings.
func BuildMonthGrid(year int, month time.Month, bookings []models.Booking) []Cell {
	if month < time.January || month > time.December {
		return nil
	}

	blanks := FirstWeekday(year, month)
	days := DaysIn(year, month)

	// only the month's own days are walked, however long a booking is
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(year, month, days, 0, 0, 0, 0, time.UTC)

	byDate := make(map[string][]BookingDayEntry)
	for _, b := range bookings {
		for _, e := range decomposeWithin(b, monthStart, monthEnd) {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{})
	}

	for day := 1; day <= days; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		entries := byDate[d.Format(DateFormat)]
		if entries == nil {
			entries = []BookingDayEntry{}
		}
		cells = append(cells, Cell{
			Date:    &d,
			Entries: entries,
		})
	}

	return cells
}

// Weeks splits cells into rows of seven; the last row may be short.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(cells); i += DaysPerWeek {
		end := i + DaysPerWeek
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[i:end])
	}
	return rows
}
