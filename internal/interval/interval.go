// Package interval models half-open calendar-date ranges used for room stays.
// A stay [Start, End) includes the check-in date and excludes the check-out
// date, so a checkout and a new check-in may share the same day.
package interval

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("start date must be before end date")

// Range is a half-open date range [Start, End) at day resolution, UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a Range, rejecting zero-length or inverted ranges.
func New(start, end time.Time) (Range, error) {
	start = truncate(start)
	end = truncate(end)
	if !start.Before(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Parse builds a Range from ISO calendar dates (YYYY-MM-DD).
func Parse(startStr, endStr string) (Range, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return Range{}, err
	}
	return New(start, end)
}

// ParseDate parses a single ISO calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Overlaps reports whether two half-open ranges share at least one night.
// Touching boundaries (a.End == b.Start) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Contains reports whether the given date falls inside the range.
func (r Range) Contains(d time.Time) bool {
	d = truncate(d)
	return !d.Before(r.Start) && d.Before(r.End)
}

// Nights returns the number of nights covered by the range.
func (r Range) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// IsValid reports whether start/end form a positive-duration range.
func IsValid(start, end time.Time) bool {
	return truncate(start).Before(truncate(end))
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
