// Package holidays supplies public holidays as special days, either from the
// Nager.Date API or from built-in rules, and exports them in several formats.
package holidays

import (
	"context"
	"errors"
	"strings"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
)

var (
	ErrFetch              = errors.New("failed to fetch holidays")
	ErrParse              = errors.New("failed to parse holidays")
	ErrUnsupportedCountry = errors.New("unsupported country")
)

// Source returns the public holidays of a country in a year.
type Source interface {
	PublicHolidays(ctx context.Context, year int, country string) ([]calendar.SpecialDay, error)
}

// CountryFromLocale extracts the region of a locale code, e.g. "GB" from "en-GB".
func CountryFromLocale(locale string) (string, bool) {
	parts := strings.FieldsFunc(locale, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) < 2 || len(parts[1]) != 2 {
		return "", false
	}
	return strings.ToUpper(parts[1]), true
}

// Merge returns public holidays followed by user supplied days. Entries on
// the same date are kept side by side.
func Merge(public, user []calendar.SpecialDay) []calendar.SpecialDay {
	out := make([]calendar.SpecialDay, 0, len(public)+len(user))
	out = append(out, public...)
	return append(out, user...)
}
