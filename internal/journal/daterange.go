package journal

import (
	"strings"
	"time"
)

// DateRange bounds trade entry time inclusively. Nil means unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses optional start and end bounds given as YYYY-MM-DD or
// RFC3339. Date-only values are interpreted in loc, and a date-only end
// covers the whole day.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	var r DateRange

	if s := strings.TrimSpace(start); s != "" {
		t, _, err := parseBound(s, loc)
		if err != nil {
			return r, newValidationError("startDate", "must be YYYY-MM-DD or RFC3339, got %q", s)
		}
		r.Start = &t
	}

	if s := strings.TrimSpace(end); s != "" {
		t, dateOnly, err := parseBound(s, loc)
		if err != nil {
			return r, newValidationError("endDate", "must be YYYY-MM-DD or RFC3339, got %q", s)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		r.End = &t
	}

	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return r, newValidationError("startDate", "must not be after endDate")
	}
	return r, nil
}

func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
