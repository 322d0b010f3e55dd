package calendar

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var localesYAML []byte

// Localizer supplies the display names used on the calendar.
type Localizer interface {
	WeekdayName(wd time.Weekday) string
	MonthName(m time.Month) string
	Capitalize(s string) string
}

type nameSet struct {
	Months   []string `yaml:"months"`
	Weekdays []string `yaml:"weekdays"`
}

type localeEntry struct {
	Regions   []string           `yaml:"regions"`
	Months    []string           `yaml:"months"`
	Weekdays  []string           `yaml:"weekdays"`
	Overrides map[string]nameSet `yaml:"overrides"`
}

// localeTable is parsed once and never modified afterwards.
var localeTable = sync.OnceValues(func() (map[string]localeEntry, error) {
	table := map[string]localeEntry{}
	if err := yaml.Unmarshal(localesYAML, &table); err != nil {
		return nil, fmt.Errorf("parse locale table: %w", err)
	}
	for lang, e := range table {
		if len(e.Months) != 12 || len(e.Weekdays) != 7 {
			return nil, fmt.Errorf("locale table: %s needs 12 months and 7 weekdays", lang)
		}
		for region, o := range e.Overrides {
			if (o.Months != nil && len(o.Months) != 12) || (o.Weekdays != nil && len(o.Weekdays) != 7) {
				return nil, fmt.Errorf("locale table: %s-%s override has wrong length", lang, region)
			}
		}
	}
	return table, nil
})

// Locale holds the names of one supported locale. A Locale is not safe for
// concurrent use; load one per render.
type Locale struct {
	code     string
	lang     language.Tag
	months   []string
	weekdays []string
	upper    cases.Caser
}

// LoadLocale resolves a locale code such as "en-GB" or "sv_SE".
func LoadLocale(code string) (*Locale, error) {
	table, err := localeTable()
	if err != nil {
		return nil, err
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	tag, err := language.Parse(normalized)
	if err != nil {
		return nil, &InvalidLocaleError{Locale: code}
	}

	var lang, region string
	parts := strings.Split(tag.String(), "-")
	switch len(parts) {
	case 1:
		lang = parts[0]
	case 2:
		lang, region = parts[0], parts[1]
	default:
		return nil, &InvalidLocaleError{Locale: code}
	}

	entry, ok := table[lang]
	if !ok {
		return nil, &InvalidLocaleError{Locale: code}
	}
	if region != "" && !containsString(entry.Regions, region) {
		return nil, &InvalidLocaleError{Locale: code}
	}

	names := nameSet{Months: entry.Months, Weekdays: entry.Weekdays}
	if o, ok := entry.Overrides[region]; ok {
		if o.Months != nil {
			names.Months = o.Months
		}
		if o.Weekdays != nil {
			names.Weekdays = o.Weekdays
		}
	}

	base := language.Make(lang)
	return &Locale{
		code:     tag.String(),
		lang:     base,
		months:   names.Months,
		weekdays: names.Weekdays,
		upper:    cases.Upper(base),
	}, nil
}

// SupportedLocales lists every accepted language-region code, sorted.
func SupportedLocales() []string {
	table, err := localeTable()
	if err != nil {
		return nil
	}
	var out []string
	for lang, e := range table {
		for _, r := range e.Regions {
			out = append(out, lang+"-"+r)
		}
	}
	sort.Strings(out)
	return out
}

// Code returns the canonical locale code, e.g. "en-GB".
func (l *Locale) Code() string { return l.code }

// Language returns the language subtag, e.g. "en".
func (l *Locale) Language() string { return l.lang.String() }

// WeekdayName returns the full weekday name in the locale's natural casing.
func (l *Locale) WeekdayName(wd time.Weekday) string {
	return l.weekdays[wd]
}

// MonthName returns the month name with its first letter capitalized.
func (l *Locale) MonthName(m time.Month) string {
	return l.Capitalize(l.months[m-1])
}

// Capitalize upper-cases the first rune of s using the locale's casing rules.
func (l *Locale) Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return l.upper.String(string(r)) + s[size:]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
