package resume

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Zachkp/resume/internal/duration"
	"github.com/Zachkp/resume/internal/i18n"
)

// ExperienceView is an experience ready for a template in one locale.
type ExperienceView struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Logo        string   `json:"logo,omitempty"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	Description []string `json:"description"`
	Period      string   `json:"period"`
	Duration    string   `json:"duration"`
	Months      int      `json:"months"`
	Employment  string   `json:"employment"`
	Working     string   `json:"working,omitempty"`
	Skills      []string `json:"skills"`
	Highlighted bool     `json:"highlighted"`
}

// SkillShare is one entry of the skill ranking.
type SkillShare struct {
	Skill    string `json:"skill"`
	Months   int    `json:"months"`
	Percent  int    `json:"percent"`
	Duration string `json:"duration"`
	Selected bool   `json:"selected"`
}

type EducationView struct {
	Institution string   `json:"institution"`
	Logo        string   `json:"logo,omitempty"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Description []string `json:"description,omitempty"`
	Period      string   `json:"period"`
	GPA         string   `json:"gpa,omitempty"`
}

type PostView struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	ReadingTime string   `json:"readingTime"`
}

// Builder renders résumé content for a locale against a calculator's clock.
// The selected skill is explicit per-request state, never shared.
type Builder struct {
	resume *Resume
	calc   *duration.Calculator
}

func NewBuilder(r *Resume, calc *duration.Calculator) *Builder {
	return &Builder{resume: r, calc: calc}
}

func (b *Builder) Resume() *Resume { return b.resume }

// Experiences renders the work history in document order. Jobs carrying
// selectedSkill are highlighted.
func (b *Builder) Experiences(l i18n.Locale, selectedSkill string) ([]ExperienceView, error) {
	out := make([]ExperienceView, 0, len(b.resume.Experiences))
	for _, exp := range b.resume.Experiences {
		months, err := b.calc.Span(duration.Interval{
			Start:   exp.start,
			End:     exp.end,
			Ongoing: exp.IsCurrentJob,
		})
		if err != nil {
			return nil, fmt.Errorf("experience %q: %w", exp.Company, err)
		}

		text := exp.Localized(l)
		out = append(out, ExperienceView{
			ID:          ExperienceID(exp.Company),
			Company:     exp.Company,
			Logo:        exp.Logo,
			Position:    text.Position,
			Location:    text.Location,
			Description: text.Description,
			Period:      period(exp.start, exp.end, exp.IsCurrentJob, l),
			Duration:    duration.Format(months, l),
			Months:      months,
			Employment:  exp.EmploymentType.Text(l),
			Working:     exp.WorkingModel.Text(l),
			Skills:      exp.SkillTags,
			Highlighted: selectedSkill != "" && slices.Contains(exp.SkillTags, selectedSkill),
		})
	}
	return out, nil
}

// Skills ranks skills by time practised and their share of total experience.
func (b *Builder) Skills(l i18n.Locale, selectedSkill string) ([]SkillShare, error) {
	intervals := b.resume.Intervals()
	total, err := b.calc.TotalMonths(intervals)
	if err != nil {
		return nil, err
	}
	ranked, err := b.calc.LabelDurations(intervals)
	if err != nil {
		return nil, err
	}

	out := make([]SkillShare, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, SkillShare{
			Skill:    r.Label,
			Months:   r.Months,
			Percent:  duration.Share(r.Months, total),
			Duration: duration.Format(r.Months, l),
			Selected: r.Label == selectedSkill,
		})
	}
	return out, nil
}

// Now is the moment ongoing jobs run to.
func (b *Builder) Now() time.Time { return b.calc.Now() }

func (b *Builder) TotalMonths() (int, error) {
	return b.calc.TotalMonths(b.resume.Intervals())
}

// TotalExperience formats the summed length of every job.
func (b *Builder) TotalExperience(l i18n.Locale) (string, error) {
	return b.calc.TotalExperience(b.resume.Intervals(), l)
}

func (b *Builder) Education(l i18n.Locale) []EducationView {
	out := make([]EducationView, 0, len(b.resume.Education))
	for _, edu := range b.resume.Education {
		text := edu.Localized(l)
		out = append(out, EducationView{
			Institution: edu.Institution,
			Logo:        edu.Logo,
			Degree:      text.Degree,
			Field:       text.Field,
			Description: text.Description,
			Period:      period(edu.start, edu.end, false, l),
			GPA:         edu.GPA,
		})
	}
	return out
}

// Posts renders blog summaries, newest first.
func (b *Builder) Posts(l i18n.Locale) []PostView {
	posts := make([]Post, len(b.resume.Posts))
	copy(posts, b.resume.Posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].published.After(posts[j].published)
	})

	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostView{
			Title:       p.Title,
			Link:        p.Link,
			Date:        duration.FormatDate(p.published, l),
			Description: p.Description,
			Thumbnail:   p.Thumbnail,
			Categories:  p.Categories,
			ReadingTime: fmt.Sprintf("%d %s", p.ReadingTime, i18n.T(l, "blog.minutes")),
		})
	}
	return out
}

// ExperienceID is the anchor id of a company's card.
func ExperienceID(company string) string {
	return "experience-" + strings.Join(strings.Fields(strings.ToLower(company)), "-")
}

func period(start, end time.Time, current bool, l i18n.Locale) string {
	to := duration.FormatDate(end, l)
	if current || end.IsZero() {
		to = i18n.T(l, "experience.current")
	}
	return duration.FormatDate(start, l) + " - " + to
}
