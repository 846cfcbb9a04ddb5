// Package resume holds the site's content: personal info, work history,
// education and blog summaries, loaded from a YAML document.
package resume

import (
	"time"

	"github.com/Zachkp/resume/internal/i18n"
)

type EmploymentType int

const (
	FullTime EmploymentType = iota + 1
	PartTime
	Contract
	Freelance
)

var employmentKeys = map[EmploymentType]string{
	FullTime:  "employment.fullTime",
	PartTime:  "employment.partTime",
	Contract:  "employment.contract",
	Freelance: "employment.freelance",
}

// Text returns the localized label, empty for unknown values.
func (e EmploymentType) Text(l i18n.Locale) string {
	key, ok := employmentKeys[e]
	if !ok {
		return ""
	}
	return i18n.T(l, key)
}

type WorkingModel int

const (
	Hybrid WorkingModel = iota + 1
	Remote
	Office
)

var workingKeys = map[WorkingModel]string{
	Hybrid: "working.hybrid",
	Remote: "working.remote",
	Office: "working.office",
}

func (w WorkingModel) Text(l i18n.Locale) string {
	key, ok := workingKeys[w]
	if !ok {
		return ""
	}
	return i18n.T(l, key)
}

// Localized is the per-locale text of an experience or education entry.
type Localized struct {
	Position    string   `yaml:"position" json:"position"`
	Location    string   `yaml:"location" json:"location"`
	Description []string `yaml:"description" json:"description"`
}

type Experience struct {
	Company        string                    `yaml:"company" json:"company"`
	Logo           string                    `yaml:"logo" json:"logo,omitempty"`
	StartDate      string                    `yaml:"startDate" json:"startDate"`
	EndDate        string                    `yaml:"endDate" json:"endDate,omitempty"`
	IsCurrentJob   bool                      `yaml:"isCurrentJob" json:"isCurrentJob"`
	EmploymentType EmploymentType            `yaml:"employmentType" json:"employmentType"`
	WorkingModel   WorkingModel              `yaml:"workingModel" json:"workingModel,omitempty"`
	SkillTags      []string                  `yaml:"skillTags" json:"skillTags"`
	Text           map[i18n.Locale]Localized `yaml:"text" json:"text"`

	start, end time.Time
}

// Start returns the parsed start date.
func (e Experience) Start() time.Time { return e.start }

// End returns the parsed end date, zero when the job has no end date.
func (e Experience) End() time.Time { return e.end }

// Localized returns the text for l, falling back to the default locale.
func (e Experience) Localized(l i18n.Locale) Localized {
	if t, ok := e.Text[l]; ok {
		return t
	}
	return e.Text[i18n.Default]
}

type EducationText struct {
	Degree      string   `yaml:"degree" json:"degree"`
	Field       string   `yaml:"field" json:"field"`
	Description []string `yaml:"description" json:"description,omitempty"`
}

type Education struct {
	Institution string                        `yaml:"institution" json:"institution"`
	Logo        string                        `yaml:"logo" json:"logo,omitempty"`
	StartDate   string                        `yaml:"startDate" json:"startDate"`
	EndDate     string                        `yaml:"endDate" json:"endDate,omitempty"`
	GPA         string                        `yaml:"gpa" json:"gpa,omitempty"`
	Text        map[i18n.Locale]EducationText `yaml:"text" json:"text"`

	start, end time.Time
}

func (e Education) Localized(l i18n.Locale) EducationText {
	if t, ok := e.Text[l]; ok {
		return t
	}
	return e.Text[i18n.Default]
}

type PersonalInfo struct {
	Name     string                 `yaml:"name" json:"name"`
	Email    string                 `yaml:"email" json:"email"`
	Phone    string                 `yaml:"phone" json:"phone,omitempty"`
	Avatar   string                 `yaml:"avatar" json:"avatar,omitempty"`
	CVPath   string                 `yaml:"cv" json:"cv,omitempty"`
	Title    map[i18n.Locale]string `yaml:"title" json:"title"`
	Location map[i18n.Locale]string `yaml:"location" json:"location"`
	About    map[i18n.Locale]string `yaml:"about" json:"about"`
}

type SocialMedia struct {
	GitHub    string `yaml:"github" json:"github,omitempty"`
	LinkedIn  string `yaml:"linkedin" json:"linkedin,omitempty"`
	Twitter   string `yaml:"twitter" json:"twitter,omitempty"`
	Instagram string `yaml:"instagram" json:"instagram,omitempty"`
	YouTube   string `yaml:"youtube" json:"youtube,omitempty"`
	Medium    string `yaml:"medium" json:"medium,omitempty"`
	Website   string `yaml:"website" json:"website,omitempty"`
}

// Post is a blog post summary. Posts are curated in the résumé document.
type Post struct {
	Title       string   `yaml:"title" json:"title"`
	Link        string   `yaml:"link" json:"link"`
	PubDate     string   `yaml:"pubDate" json:"pubDate"`
	Description string   `yaml:"description" json:"description"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail,omitempty"`
	Categories  []string `yaml:"categories" json:"categories,omitempty"`
	ReadingTime int      `yaml:"readingTime" json:"readingTime"`

	published time.Time
}

type Resume struct {
	Personal    PersonalInfo `yaml:"personal" json:"personal"`
	Social      SocialMedia  `yaml:"social" json:"social"`
	Experiences []Experience `yaml:"experiences" json:"experiences"`
	Education   []Education  `yaml:"education" json:"education"`
	Posts       []Post       `yaml:"posts" json:"posts"`
}
