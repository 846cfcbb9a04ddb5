// Package i18n holds the two site locales and their string tables.
package i18n

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	Turkish Locale = "tr"
	English Locale = "en"

	Default = Turkish
)

var supported = []Locale{Turkish, English}

var matcher = language.NewMatcher([]language.Tag{language.Turkish, language.English})

// Supported returns the locales the site is rendered in, default first.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// Parse maps a path segment or query value to a locale.
func Parse(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case Turkish:
		return Turkish, true
	case English:
		return English, true
	}
	return Default, false
}

// Negotiate picks a locale from an Accept-Language header value.
func Negotiate(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

var months = map[Locale][12]string{
	Turkish: {"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
	English: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

// MonthName returns the month name for m in 1..12.
func MonthName(l Locale, m int) string {
	names, ok := months[l]
	if !ok {
		names = months[Default]
	}
	if m < 1 || m > 12 {
		return ""
	}
	return names[m-1]
}

// Unit is a duration unit word with its plural suffix, empty for locales
// without plural inflection.
type Unit struct {
	Word   string
	Plural string
}

var units = map[Locale]map[string]Unit{
	Turkish: {
		"year":  {Word: "yıl"},
		"month": {Word: "ay"},
	},
	English: {
		"year":  {Word: "year", Plural: "s"},
		"month": {Word: "month", Plural: "s"},
	},
}

// UnitFor returns the unit word ("year" or "month") for l.
func UnitFor(l Locale, unit string) Unit {
	if u, ok := units[l][unit]; ok {
		return u
	}
	return units[Default][unit]
}

// Phrase renders count with its unit word, inflected for plural counts.
func (u Unit) Phrase(count int) string {
	word := u.Word
	if count > 1 {
		word += u.Plural
	}
	return strconv.Itoa(count) + " " + word
}
