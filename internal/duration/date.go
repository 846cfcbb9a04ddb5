package duration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zachkp/resume/internal/i18n"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrNegativeSpan = errors.New("interval ends before it starts")
)

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01",
	"2006",
}

// ParseDate reads an ISO-style calendar date. An empty string is the
// absent date and yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Normalize resolves the absent date to now and drops the clock part, so
// arithmetic only ever sees calendar days.
func Normalize(t, now time.Time) time.Time {
	if t.IsZero() {
		t = now
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween counts whole months from start to end with end inclusive:
// a span ending on day D counts day D. The result is negative when end
// precedes start.
func MonthsBetween(start, end time.Time) int {
	sy, sm, sd := start.Date()
	end = time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, time.UTC)
	ey, em, ed := end.Date()

	months := (ey-sy)*12 + int(em-sm)
	if ed < sd {
		months--
	}
	return months
}

// Format renders whole months as "<years> <months>" in l. Zero phrases are
// left out, so zero months renders as the empty string.
func Format(totalMonths int, l i18n.Locale) string {
	years := totalMonths / 12
	months := totalMonths % 12

	parts := make([]string, 0, 2)
	if years > 0 {
		parts = append(parts, i18n.UnitFor(l, "year").Phrase(years))
	}
	if months > 0 {
		parts = append(parts, i18n.UnitFor(l, "month").Phrase(months))
	}
	return strings.Join(parts, " ")
}

// FormatDate renders the month and year of t, e.g. "Ocak 2024".
func FormatDate(t time.Time, l i18n.Locale) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", i18n.MonthName(l, int(t.Month())), t.Year())
}
