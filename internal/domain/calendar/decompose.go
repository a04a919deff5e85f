package calendar

import (
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/models"
)

const DateFormat = "2006-01-02"

type Position string

const (
	PositionStart  Position = "start"
	PositionMiddle Position = "middle"
	PositionEnd    Position = "end"
)

// BookingDayEntry is one calendar day touched by a booking.
type BookingDayEntry struct {
	Date       string          `json:"date"`
	BookingID  string          `json:"booking_id"`
	Position   Position        `json:"position"`
	IsStartDay bool            `json:"is_start_day"`
	IsEndDay   bool            `json:"is_end_day"`
	Booking    *models.Booking `json:"-"`
}

// civilDate drops the time of day, keeping the date the timestamp shows in
// its own location. The result is pinned to UTC so stepping a day is always
// 24h regardless of DST in the source zone.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DecomposeBookingIntoDays returns one entry per calendar day from the start
// date to the end date inclusive, in order. A single-day booking is a start
// with both flags set.
func DecomposeBookingIntoDays(b models.Booking) []BookingDayEntry {
	return decomposeWithin(b, time.Time{}, time.Time{})
}

// decomposeWithin is DecomposeBookingIntoDays clipped to the civil dates
// from..to. Zero bounds do not clip. Positions and flags always refer to the
// booking's own first and last day.
func decomposeWithin(b models.Booking, from, to time.Time) []BookingDayEntry {
	first := civilDate(b.StartDateTime)
	end := civilDate(b.EndDateTime)

	last := end
	if last.Before(first) {
		last = first
	}

	lo, hi := first, last
	if !from.IsZero() && from.After(lo) {
		lo = from
	}
	if !to.IsZero() && to.Before(hi) {
		hi = to
	}
	if hi.Before(lo) {
		return nil
	}

	days := int(hi.Sub(lo).Hours()/24) + 1
	out := make([]BookingDayEntry, 0, days)

	ref := &b
	for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
		isStart := d.Equal(first)
		isEnd := d.Equal(end)

		pos := PositionMiddle
		switch {
		case isStart:
			pos = PositionStart
		case isEnd:
			pos = PositionEnd
		}

		out = append(out, BookingDayEntry{
			Date:       d.Format(DateFormat),
			BookingID:  b.ID,
			Position:   pos,
			IsStartDay: isStart,
			IsEndDay:   isEnd,
			Booking:    ref,
		})
	}

	return out
}
