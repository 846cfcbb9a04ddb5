// Package duration computes how long things lasted: the span of a single
// job, the total across a career and the time spent with each skill.
//
// All spans are whole months with an inclusive end date. Intervals that
// have no end date, or are marked ongoing, end at the Calculator's clock.
package duration

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Zachkp/resume/internal/i18n"
)

// Clock abstracts time.Now so ongoing intervals can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Interval is one period of activity, such as a job tenure.
type Interval struct {
	Start   time.Time
	End     time.Time
	Ongoing bool
	Labels  []string
}

// LabelDuration is the accumulated span of one label.
type LabelDuration struct {
	Label  string `json:"label"`
	Months int    `json:"months"`
}

type Calculator struct {
	clock Clock
}

// NewCalculator returns a Calculator reading now from clock. A nil clock
// means the system clock.
func NewCalculator(clock Clock) *Calculator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calculator{clock: clock}
}

// Now returns the calculator's current moment.
func (c *Calculator) Now() time.Time {
	return c.clock.Now()
}

// Span returns the month span of a single interval.
func (c *Calculator) Span(iv Interval) (int, error) {
	now := c.clock.Now()
	start := Normalize(iv.Start, now)
	end := Normalize(iv.End, now)
	if iv.Ongoing {
		end = Normalize(now, now)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s > %s", ErrNegativeSpan,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return MonthsBetween(start, end), nil
}

// Duration formats the span between start and end. A zero end is ongoing.
func (c *Calculator) Duration(start, end time.Time, l i18n.Locale) (string, error) {
	months, err := c.Span(Interval{Start: start, End: end})
	if err != nil {
		return "", err
	}
	return Format(months, l), nil
}

// TotalMonths sums the spans of intervals. Overlapping intervals are
// counted once each.
func (c *Calculator) TotalMonths(intervals []Interval) (int, error) {
	total := 0
	for i, iv := range intervals {
		months, err := c.Span(iv)
		if err != nil {
			return 0, fmt.Errorf("interval %d: %w", i, err)
		}
		total += months
	}
	return total, nil
}

// TotalExperience is TotalMonths formatted in l.
func (c *Calculator) TotalExperience(intervals []Interval, l i18n.Locale) (string, error) {
	total, err := c.TotalMonths(intervals)
	if err != nil {
		return "", err
	}
	return Format(total, l), nil
}

// LabelDurations credits the full span of every interval to each of its
// labels and ranks the labels by months, longest first. Ties keep the order
// in which labels first appear.
func (c *Calculator) LabelDurations(intervals []Interval) ([]LabelDuration, error) {
	index := make(map[string]int)
	var out []LabelDuration

	for i, iv := range intervals {
		months, err := c.Span(iv)
		if err != nil {
			return nil, fmt.Errorf("interval %d: %w", i, err)
		}
		for _, label := range iv.Labels {
			pos, ok := index[label]
			if !ok {
				pos = len(out)
				index[label] = pos
				out = append(out, LabelDuration{Label: label})
			}
			out[pos].Months += months
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Months > out[j].Months
	})
	return out, nil
}

// Share is labelMonths as a rounded percentage of totalMonths, 0 when the
// total is not positive.
func Share(labelMonths, totalMonths int) int {
	if totalMonths <= 0 {
		return 0
	}
	return int(math.Round(float64(labelMonths) / float64(totalMonths) * 100))
}
