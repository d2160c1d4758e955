package tournament

import "time"

// startDateFormats lists the machine-readable datetime layouts observed in
// the source's time elements, most specific first.
var startDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStartDate attempts to parse an ISO-8601 start or end date string.
// Returns time.Time{} (zero value) if parsing fails. Records whose date
// text is relative or partial keep StartDate unset and only carry the raw
// text in the display Date field.
func ParseStartDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range startDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsWithinDays checks if the tournament starts within N days from now.
// Returns true if days <= 0 (window disabled) or the start date is absent
// or unparseable: an unknown date is possibly-upcoming and must not be
// silently dropped.
func (t *Tournament) IsWithinDays(now time.Time, days int) bool {
	if days <= 0 {
		return true
	}
	start := ParseStartDate(t.StartDate)
	if start.IsZero() {
		return true
	}
	cutoff := now.AddDate(0, 0, days)
	return !start.Before(now) && !start.After(cutoff)
}

// IsPast checks if the tournament's start date has passed.
// Returns false if the date cannot be parsed (safer default).
func (t *Tournament) IsPast(now time.Time) bool {
	start := ParseStartDate(t.StartDate)
	if start.IsZero() {
		return false
	}
	return start.Before(now)
}
