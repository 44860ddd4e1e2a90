// Package dateutil handles the 8-digit YYYYMMDD date strings used
// throughout the API. Every function takes the reference location
// explicitly; there is no package-level timezone state.
package dateutil

import (
	"math"
	"time"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// Layout is the wire format for dates.
const Layout = "20060102"

// Parse converts an 8-digit YYYYMMDD string to midnight of that day in
// loc. Returns domain.ErrInvalidDate when the string is not exactly 8
// digits forming a valid calendar date.
func Parse(date string, loc *time.Location) (time.Time, error) {
	if len(date) != 8 {
		return time.Time{}, domain.ErrInvalidDate
	}
	for _, r := range date {
		if r < '0' || r > '9' {
			return time.Time{}, domain.ErrInvalidDate
		}
	}
	t, err := time.ParseInLocation(Layout, date, loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

// Format renders t as a YYYYMMDD string in its own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Midnight truncates t to local midnight in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ValidateRange checks that startDate and endDate are valid date
// strings, that startDate <= endDate, and that endDate is not after
// today in loc.
func ValidateRange(startDate, endDate string, now time.Time, loc *time.Location) error {
	start, err := Parse(startDate, loc)
	if err != nil {
		return err
	}
	end, err := Parse(endDate, loc)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return domain.ErrInvalidDateRange
	}
	if end.After(Midnight(now, loc)) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// SpanDays returns the number of days from startDate to endDate, both
// assumed valid. A single-day window spans 0 days. Rounding absorbs
// the 23h/25h days around DST transitions.
func SpanDays(startDate, endDate string, loc *time.Location) int {
	start, _ := Parse(startDate, loc)
	end, _ := Parse(endDate, loc)
	return int(math.Round(end.Sub(start).Hours() / 24))
}
