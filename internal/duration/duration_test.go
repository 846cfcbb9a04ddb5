package duration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/resume/internal/i18n"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2021-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 15, d.Day())

	d, err = ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("2024-13-40")
	assert.True(t, errors.Is(err, ErrInvalidDate))

	_, err = ParseDate("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeAbsentIsNow(t *testing.T) {
	now := time.Date(2025, 6, 10, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Normalize(time.Time{}, now))
}

func TestMonthsBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-31", 1},
		{"2020-01-15", "2021-01-14", 12},
		{"2020-01-15", "2021-01-13", 11},
		{"2024-05-10", "2024-05-10", 0},
		{"2024-01-31", "2024-01-31", 0},
		{"2023-03-01", "2024-04-30", 14},
		{"2024-02-01", "2024-02-29", 1},
		{"2024-06-01", "2024-01-01", -5},
	}
	for _, tc := range cases {
		got := MonthsBetween(day(t, tc.start), day(t, tc.end))
		assert.Equal(t, tc.want, got, "%s..%s", tc.start, tc.end)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1 yıl 2 ay", Format(14, i18n.Turkish))
	assert.Equal(t, "1 year 2 months", Format(14, i18n.English))
	assert.Equal(t, "2 years", Format(24, i18n.English))
	assert.Equal(t, "1 month", Format(1, i18n.English))
	assert.Equal(t, "3 yıl", Format(36, i18n.Turkish))
	assert.Equal(t, "", Format(0, i18n.English))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Ocak 2024", FormatDate(day(t, "2024-01-20"), i18n.Turkish))
	assert.Equal(t, "August 2016", FormatDate(day(t, "2016-08"), i18n.English))
	assert.Equal(t, "", FormatDate(time.Time{}, i18n.English))
}

func TestDuration(t *testing.T) {
	calc := NewCalculator(FixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)))

	s, err := calc.Duration(day(t, "2024-05-10"), day(t, "2024-05-10"), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = calc.Duration(day(t, "2023-03-01"), day(t, "2024-04-30"), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "1 year 2 months", s)

	// Absent end runs to the clock: 2023-01-01..2025-01-01 inclusive.
	s, err = calc.Duration(day(t, "2023-01-01"), time.Time{}, i18n.Turkish)
	require.NoError(t, err)
	assert.Equal(t, "2 yıl", s)

	_, err = calc.Duration(day(t, "2024-06-01"), day(t, "2024-01-01"), i18n.English)
	assert.ErrorIs(t, err, ErrNegativeSpan)
}

func TestTotalMonthsDoubleCountsOverlaps(t *testing.T) {
	calc := NewCalculator(FixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	intervals := []Interval{
		{Start: day(t, "2024-01-01"), End: day(t, "2024-06-30"), Labels: []string{"X"}},
		{Start: day(t, "2024-01-01"), End: day(t, "2024-06-30"), Labels: []string{"X", "Y"}},
	}

	total, err := calc.TotalMonths(intervals)
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	labels, err := calc.LabelDurations(intervals)
	require.NoError(t, err)
	assert.Equal(t, []LabelDuration{{Label: "X", Months: 12}, {Label: "Y", Months: 6}}, labels)

	s, err := calc.TotalExperience(intervals, i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "1 year", s)
}

func TestLabelDurationsRanking(t *testing.T) {
	calc := NewCalculator(FixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	intervals := []Interval{
		{Start: day(t, "2020-01-01"), End: day(t, "2020-03-31"), Labels: []string{"A"}},
		{Start: day(t, "2021-01-01"), End: day(t, "2021-10-31"), Labels: []string{"B"}},
		{Start: day(t, "2022-01-01"), End: day(t, "2022-07-31"), Labels: []string{"C"}},
		{Start: day(t, "2023-01-01"), End: day(t, "2023-07-31"), Labels: []string{"D"}},
	}

	labels, err := calc.LabelDurations(intervals)
	require.NoError(t, err)
	require.Len(t, labels, 4)

	var order []string
	for _, l := range labels {
		order = append(order, l.Label)
	}
	assert.Equal(t, []string{"B", "C", "D", "A"}, order)
	assert.Equal(t, 10, labels[0].Months)
	assert.Equal(t, 3, labels[3].Months)
}

func TestOngoingFollowsClock(t *testing.T) {
	iv := Interval{Start: day(t, "2024-01-01"), End: day(t, "2024-02-29"), Ongoing: true}

	early := NewCalculator(FixedClock(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)))
	late := NewCalculator(FixedClock(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))

	a, err := early.Span(iv)
	require.NoError(t, err)
	b, err := late.Span(iv)
	require.NoError(t, err)

	assert.Equal(t, 6, a)
	assert.Equal(t, 12, b)
}

func TestTotalMonthsRejectsNegativeSpan(t *testing.T) {
	calc := NewCalculator(FixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	_, err := calc.TotalMonths([]Interval{
		{Start: day(t, "2024-01-01"), End: day(t, "2024-03-31")},
		{Start: day(t, "2026-01-01"), Ongoing: true},
	})
	assert.ErrorIs(t, err, ErrNegativeSpan)
	assert.Contains(t, err.Error(), "interval 1")
}

func TestShare(t *testing.T) {
	assert.Equal(t, 50, Share(6, 12))
	assert.Equal(t, 33, Share(1, 3))
	assert.Equal(t, 67, Share(2, 3))
	assert.Equal(t, 0, Share(5, 0))
	assert.Equal(t, 200, Share(24, 12))
}

func TestNewCalculatorDefaultsToSystemClock(t *testing.T) {
	calc := NewCalculator(nil)
	assert.WithinDuration(t, time.Now(), calc.Now(), time.Minute)
}
