// Package params holds the calendar parameters shared by the CLI, the HTTP
// server and the WASM binding, and turns them into a calendar.Request.
package params

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/themes"
)

const (
	DefaultLocale            = "en-GB"
	DefaultDayNameCharacters = 1
)

var ErrInvalidParameter = errors.New("invalid parameter")

// Params describes one calendar. The JSON form is accepted by the WASM
// binding; the server reads the same fields from the query string.
type Params struct {
	Year              int                   `json:"year"`
	Locale            string                `json:"locale"`
	DayNameCharacters int                   `json:"day_name_characters"`
	Theme             string                `json:"theme"`
	SpecialDays       []calendar.SpecialDay `json:"special_days"`
	PublicHolidays    bool                  `json:"public_holidays"`
	Offline           bool                  `json:"offline"`

	DayFontSize        float64 `json:"day_font_size"`
	MonthFontSize      float64 `json:"month_font_size"`
	WeekNumberFontSize float64 `json:"week_number_font_size"`
	SpecialDayFontSize float64 `json:"special_day_font_size"`
	NotesSpace         float64 `json:"notes_space"`
	HighlightHolidays  bool    `json:"highlight_holidays"`
	Notes              string  `json:"notes"`
}

// Defaults returns the parameters used for fields a caller leaves out.
func Defaults(now time.Time) Params {
	return Params{
		Year:               now.Year(),
		Locale:             DefaultLocale,
		DayNameCharacters:  DefaultDayNameCharacters,
		Theme:              themes.Default,
		DayFontSize:        calendar.DefaultDayFontSizePt,
		MonthFontSize:      calendar.DefaultMonthFontSizePt,
		WeekNumberFontSize: calendar.DefaultWeekNumberFontSizePt,
		SpecialDayFontSize: calendar.DefaultSpecialDayFontSizePt,
		NotesSpace:         calendar.DefaultNotesSpaceMM,
		HighlightHolidays:  true,
	}
}

// DecodeJSON reads parameters from a JSON object on top of Defaults.
func DecodeJSON(data []byte, now time.Time) (Params, error) {
	p := Defaults(now)
	if len(strings.TrimSpace(string(data))) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	p.SpecialDays = Sanitize(p.SpecialDays)
	return p, p.Validate()
}

// DecodeJSONRequiringYear is DecodeJSON for callers that must name the year;
// a missing year is an ErrInvalidParameter instead of the current year.
func DecodeJSONRequiringYear(data []byte, now time.Time) (Params, error) {
	var fields struct {
		Year *int `json:"year"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if fields.Year == nil {
		return Params{}, fmt.Errorf("%w: year is required", ErrInvalidParameter)
	}
	return DecodeJSON(data, now)
}

// FromQuery reads parameters from a URL query on top of Defaults. Special
// days arrive as a JSON array in special_days.
func FromQuery(q url.Values, now time.Time) (Params, error) {
	p := Defaults(now)
	var err error

	if p.Year, err = intField(q, "year", p.Year); err != nil {
		return Params{}, err
	}
	if p.DayNameCharacters, err = intField(q, "day_name_characters", p.DayNameCharacters); err != nil {
		return Params{}, err
	}
	if v := strings.TrimSpace(q.Get("locale")); v != "" {
		p.Locale = v
	}
	if v := strings.TrimSpace(q.Get("theme")); v != "" {
		p.Theme = v
	}
	if p.PublicHolidays, err = BoolField(q, "public_holidays", false); err != nil {
		return Params{}, err
	}
	if p.Offline, err = BoolField(q, "offline", false); err != nil {
		return Params{}, err
	}
	if p.HighlightHolidays, err = BoolField(q, "highlight_holidays", true); err != nil {
		return Params{}, err
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"day_font_size", &p.DayFontSize},
		{"month_font_size", &p.MonthFontSize},
		{"week_number_font_size", &p.WeekNumberFontSize},
		{"special_day_font_size", &p.SpecialDayFontSize},
		{"notes_space", &p.NotesSpace},
	}
	for _, f := range floats {
		if *f.dst, err = floatField(q, f.key, *f.dst); err != nil {
			return Params{}, err
		}
	}

	if raw := strings.TrimSpace(q.Get("special_days")); raw != "" {
		days, err := ParseSpecialDays([]byte(raw))
		if err != nil {
			return Params{}, err
		}
		p.SpecialDays = Sanitize(days)
	}
	return p, p.Validate()
}

// Validate rejects values no shell can render. Year and locale are checked
// by Resolve through the calendar package.
func (p Params) Validate() error {
	sizes := map[string]float64{
		"day_font_size":         p.DayFontSize,
		"month_font_size":       p.MonthFontSize,
		"week_number_font_size": p.WeekNumberFontSize,
		"special_day_font_size": p.SpecialDayFontSize,
		"notes_space":           p.NotesSpace,
	}
	for key, v := range sizes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidParameter, key)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidParameter, key)
		}
	}
	return nil
}

// ParseSpecialDays decodes a JSON array of special days.
func ParseSpecialDays(data []byte) ([]calendar.SpecialDay, error) {
	var days []calendar.SpecialDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("%w: special days: %v", ErrInvalidParameter, err)
	}
	return days, nil
}

// ReadSpecialDaysFile reads a JSON special-days file.
func ReadSpecialDaysFile(path string) ([]calendar.SpecialDay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read special days file '%s': %w", path, err)
	}
	days, err := ParseSpecialDays(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return days, nil
}

var strict = bluemonday.StrictPolicy()

// Sanitize strips markup from special-day names coming from untrusted input.
// The template escapes the result again when rendering.
func Sanitize(days []calendar.SpecialDay) []calendar.SpecialDay {
	out := make([]calendar.SpecialDay, 0, len(days))
	for _, d := range days {
		d.Name = strings.TrimSpace(html.UnescapeString(strict.Sanitize(d.Name)))
		out = append(out, d)
	}
	return out
}

// Resolver turns Params into a calendar.Request.
type Resolver struct {
	// Holidays is consulted when PublicHolidays is set.
	Holidays holidays.Source
	// Offline replaces Holidays when Params.Offline is set.
	Offline holidays.Source
	// LoadTheme defaults to themes.CSS, which only knows bundled themes.
	LoadTheme func(string) (string, error)
}

// Resolve loads the theme, fetches public holidays when requested and merges
// them ahead of the user's special days. Year and locale are validated first
// so a bad request never reaches a holiday source.
func (r Resolver) Resolve(ctx context.Context, p Params) (calendar.Request, error) {
	if err := calendar.ValidateYear(p.Year); err != nil {
		return calendar.Request{}, err
	}
	if _, err := calendar.LoadLocale(p.Locale); err != nil {
		return calendar.Request{}, err
	}
	if err := p.Validate(); err != nil {
		return calendar.Request{}, err
	}

	load := r.LoadTheme
	if load == nil {
		load = themes.CSS
	}
	css, err := load(p.Theme)
	if err != nil {
		return calendar.Request{}, err
	}

	days := p.SpecialDays
	if p.PublicHolidays {
		public, err := r.publicHolidays(ctx, p)
		if err != nil {
			return calendar.Request{}, err
		}
		days = holidays.Merge(public, days)
	}

	return calendar.Request{
		Year:                 p.Year,
		Locale:               p.Locale,
		DayNameCharacters:    max(p.DayNameCharacters, 0),
		ThemeCSS:             css,
		SpecialDays:          days,
		DayFontSizePt:        p.DayFontSize,
		MonthFontSizePt:      p.MonthFontSize,
		WeekNumberFontSizePt: p.WeekNumberFontSize,
		SpecialDayFontSizePt: p.SpecialDayFontSize,
		NotesSpaceMM:         p.NotesSpace,
		DisableHighlight:     !p.HighlightHolidays,
		NotesMarkdown:        p.Notes,
	}, nil
}

func (r Resolver) publicHolidays(ctx context.Context, p Params) ([]calendar.SpecialDay, error) {
	country, ok := holidays.CountryFromLocale(p.Locale)
	if !ok {
		return nil, fmt.Errorf("%w: locale '%s' has no country for public holidays", ErrInvalidParameter, p.Locale)
	}
	source := r.Holidays
	if p.Offline || source == nil {
		source = r.Offline
	}
	if source == nil {
		return nil, fmt.Errorf("%w: no public holiday source configured", holidays.ErrFetch)
	}
	return source.PublicHolidays(ctx, p.Year, country)
}

func intField(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got '%s'", ErrInvalidParameter, key, raw)
	}
	return v, nil
}

func floatField(q url.Values, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got '%s'", ErrInvalidParameter, key, raw)
	}
	return v, nil
}

// BoolField reads a boolean query field. Form checkboxes send "on".
func BoolField(q url.Values, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	switch strings.ToLower(raw) {
	case "":
		return def, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false, got '%s'", ErrInvalidParameter, key, raw)
	}
	return v, nil
}
