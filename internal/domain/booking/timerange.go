package booking

import (
	"time"

	"github.com/barberbook/booking-api/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeRange is a half-open [Start, End) slot on a single day.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange parses a calendar date plus "HH:MM" bounds. The date is
// an opaque equality key; no timezone arithmetic is done (UTC wall
// clock throughout).
func NewTimeRange(dateStr, startStr, endStr string) (time.Time, TimeRange, error) {
	day, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, TimeRange{}, httperr.ErrBusiness("invalid_date")
	}

	start, err := atTime(day, startStr)
	if err != nil {
		return time.Time{}, TimeRange{}, err
	}
	end, err := atTime(day, endStr)
	if err != nil {
		return time.Time{}, TimeRange{}, err
	}

	if !start.Before(end) {
		return time.Time{}, TimeRange{}, httperr.ErrBusiness("invalid_time_range")
	}

	return day, TimeRange{Start: start, End: end}, nil
}

func atTime(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time")
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		time.UTC,
	), nil
}

// Overlaps implements the half-open overlap test: two ranges conflict
// iff s < other.End && e > other.Start. Touching ranges do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}
