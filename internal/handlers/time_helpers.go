package handlers

import (
	"strconv"
	"time"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petsit-scheduler/internal/timezone"
)

func parseOptionalDateTime(field string, s *string, loc *time.Location) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := timezone.ParseDateTime(*s, loc)
	if err != nil {
		return nil, httperr.ErrValidation(field, "invalid_date_time")
	}
	return &t, nil
}

// yearMonth reads ?year=&month=, defaulting to the current month in loc.
func yearMonth(yearStr, monthStr string, loc *time.Location) (int, time.Month, error) {
	now := time.Now().In(loc)
	year, month := now.Year(), now.Month()

	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 || y > 9999 {
			return 0, 0, httperr.ErrValidation("year", "invalid_year")
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, httperr.ErrValidation("month", "invalid_month")
		}
		month = time.Month(m)
	}
	return year, month, nil
}
