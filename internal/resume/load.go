package resume

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/resume/internal/duration"
)

var (
	ErrEmptyCompany = errors.New("experience without company")
	ErrMissingStart = errors.New("experience without start date")
)

// Load reads a résumé document from path.
func Load(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a résumé document. Every date is parsed up
// front so rendering never meets a malformed one.
func Parse(data []byte) (*Resume, error) {
	var r Resume
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	if err := r.resolve(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Resume) resolve() error {
	for i := range r.Experiences {
		exp := &r.Experiences[i]
		if exp.Company == "" {
			return fmt.Errorf("experience %d: %w", i, ErrEmptyCompany)
		}
		if exp.StartDate == "" {
			return fmt.Errorf("experience %q: %w", exp.Company, ErrMissingStart)
		}
		start, end, err := parseRange(exp.StartDate, exp.EndDate)
		if err != nil {
			return fmt.Errorf("experience %q: %w", exp.Company, err)
		}
		exp.start, exp.end = start, end
	}

	for i := range r.Education {
		edu := &r.Education[i]
		start, end, err := parseRange(edu.StartDate, edu.EndDate)
		if err != nil {
			return fmt.Errorf("education %q: %w", edu.Institution, err)
		}
		edu.start, edu.end = start, end
	}

	for i := range r.Posts {
		p := &r.Posts[i]
		published, err := duration.ParseDate(p.PubDate)
		if err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		p.published = published
	}
	return nil
}

func parseRange(startText, endText string) (start, end time.Time, err error) {
	if start, err = duration.ParseDate(startText); err != nil {
		return
	}
	if end, err = duration.ParseDate(endText); err != nil {
		return
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		err = fmt.Errorf("%w: %s > %s", duration.ErrNegativeSpan, startText, endText)
	}
	return
}

// Check runs every job through calc. Open and current jobs end at calc's
// now, so a start date after it only fails here, not in Parse.
func (r *Resume) Check(calc *duration.Calculator) error {
	for i, iv := range r.Intervals() {
		if _, err := calc.Span(iv); err != nil {
			return fmt.Errorf("experience %q: %w", r.Experiences[i].Company, err)
		}
	}
	return nil
}

// Intervals adapts the work history to duration intervals, one per job,
// labelled with the job's skill tags.
func (r *Resume) Intervals() []duration.Interval {
	out := make([]duration.Interval, 0, len(r.Experiences))
	for _, exp := range r.Experiences {
		out = append(out, duration.Interval{
			Start:   exp.start,
			End:     exp.end,
			Ongoing: exp.IsCurrentJob,
			Labels:  exp.SkillTags,
		})
	}
	return out
}

// Skills lists every distinct skill tag in order of first appearance.
func (r *Resume) Skills() []string {
	seen := make(map[string]bool)
	var out []string
	for _, exp := range r.Experiences {
		for _, s := range exp.SkillTags {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
