package resume

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/resume/internal/duration"
	"github.com/Zachkp/resume/internal/i18n"
)

const sample = `
personal:
  name: Jane Doe
  email: jane@example.com
  title:
    en: Engineer
experiences:
  - company: Acme Corp
    startDate: "2024-01-01"
    endDate: "2024-06-30"
    employmentType: 1
    workingModel: 2
    skillTags: [Go, SQL]
    text:
      en: {position: Backend Engineer, location: Remote, description: [Built APIs]}
      tr: {position: Backend Geliştirici, location: Uzaktan}
  - company: Initech
    startDate: "2024-07-01"
    isCurrentJob: true
    employmentType: 3
    skillTags: [Go]
    text:
      tr: {position: Danışman, location: İstanbul}
education:
  - institution: State University
    startDate: "2019-09"
    endDate: "2023-06"
    text:
      en: {degree: BSc, field: CS}
posts:
  - {title: Old, link: "https://x/old", pubDate: "2022-01-10", readingTime: 3}
  - {title: New, link: "https://x/new", pubDate: "2024-05-01", readingTime: 5}
`

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	r, err := Parse([]byte(sample))
	require.NoError(t, err)
	clock := duration.FixedClock(time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC))
	return NewBuilder(r, duration.NewCalculator(clock))
}

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, r.Experiences, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Experiences[0].Start())
	assert.True(t, r.Experiences[1].End().IsZero())
	assert.Equal(t, []string{"Go", "SQL"}, r.Skills())

	ivs := r.Intervals()
	require.Len(t, ivs, 2)
	assert.True(t, ivs[1].Ongoing)
	assert.Equal(t, []string{"Go"}, ivs[1].Labels)
}

func TestParseRejectsBadDates(t *testing.T) {
	_, err := Parse([]byte(`
experiences:
  - company: Acme
    startDate: "someday"
`))
	assert.ErrorIs(t, err, duration.ErrInvalidDate)

	_, err = Parse([]byte(`
experiences:
  - company: Acme
    startDate: "2024-06-01"
    endDate: "2024-01-01"
`))
	assert.ErrorIs(t, err, duration.ErrNegativeSpan)

	_, err = Parse([]byte(`
experiences:
  - startDate: "2024-06-01"
`))
	assert.ErrorIs(t, err, ErrEmptyCompany)
}

func TestParseRequiresStartDate(t *testing.T) {
	_, err := Parse([]byte(`
experiences:
  - company: A
    endDate: "2020-06-30"
`))
	assert.ErrorIs(t, err, ErrMissingStart)
}

func TestCheckRejectsFutureStartOnOpenJobs(t *testing.T) {
	calc := duration.NewCalculator(duration.FixedClock(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))

	for name, doc := range map[string]string{
		"current": `
experiences:
  - company: A
    startDate: "2030-01-01"
    isCurrentJob: true
`,
		"open": `
experiences:
  - company: A
    startDate: "2030-01-01"
`,
	} {
		t.Run(name, func(t *testing.T) {
			r, err := Parse([]byte(doc))
			require.NoError(t, err)
			assert.ErrorIs(t, r.Check(calc), duration.ErrNegativeSpan)
		})
	}

	r, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.NoError(t, r.Check(calc))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.Personal.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExperiences(t *testing.T) {
	b := newBuilder(t)

	views, err := b.Experiences(i18n.English, "SQL")
	require.NoError(t, err)
	require.Len(t, views, 2)

	acme := views[0]
	assert.Equal(t, "experience-acme-corp", acme.ID)
	assert.Equal(t, "Backend Engineer", acme.Position)
	assert.Equal(t, "January 2024 - June 2024", acme.Period)
	assert.Equal(t, "6 months", acme.Duration)
	assert.Equal(t, "Full Time", acme.Employment)
	assert.Equal(t, "Remote", acme.Working)
	assert.True(t, acme.Highlighted)

	initech := views[1]
	// No English text: falls back to Turkish.
	assert.Equal(t, "Danışman", initech.Position)
	assert.Equal(t, "July 2024 - Present", initech.Period)
	assert.Equal(t, "6 months", initech.Duration)
	assert.Equal(t, "Contract", initech.Employment)
	assert.False(t, initech.Highlighted)

	tr, err := b.Experiences(i18n.Turkish, "")
	require.NoError(t, err)
	assert.Equal(t, "Ocak 2024 - Haziran 2024", tr[0].Period)
	assert.Equal(t, "6 ay", tr[0].Duration)
	assert.Equal(t, "Temmuz 2024 - Günümüz", tr[1].Period)
}

func TestSkills(t *testing.T) {
	b := newBuilder(t)

	skills, err := b.Skills(i18n.English, "Go")
	require.NoError(t, err)
	require.Len(t, skills, 2)

	assert.Equal(t, SkillShare{Skill: "Go", Months: 12, Percent: 100, Duration: "1 year", Selected: true}, skills[0])
	assert.Equal(t, SkillShare{Skill: "SQL", Months: 6, Percent: 50, Duration: "6 months"}, skills[1])

	total, err := b.TotalExperience(i18n.Turkish)
	require.NoError(t, err)
	assert.Equal(t, "1 yıl", total)
}

func TestSkillsEmptyResume(t *testing.T) {
	b := NewBuilder(&Resume{}, duration.NewCalculator(nil))
	skills, err := b.Skills(i18n.English, "")
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestEducationAndPosts(t *testing.T) {
	b := newBuilder(t)

	edu := b.Education(i18n.English)
	require.Len(t, edu, 1)
	assert.Equal(t, "September 2019 - June 2023", edu[0].Period)
	assert.Equal(t, "BSc", edu[0].Degree)

	posts := b.Posts(i18n.English)
	require.Len(t, posts, 2)
	assert.Equal(t, "New", posts[0].Title)
	assert.Equal(t, "May 2024", posts[0].Date)
	assert.Equal(t, "5 min read", posts[0].ReadingTime)
}

func TestEmploymentTypeText(t *testing.T) {
	assert.Equal(t, "Serbest", Freelance.Text(i18n.Turkish))
	assert.Equal(t, "", EmploymentType(9).Text(i18n.English))
	assert.Equal(t, "Ofisten", Office.Text(i18n.Turkish))
}
