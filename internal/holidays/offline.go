package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/dk"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fi"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/no"
	"github.com/rickar/cal/v2/se"
	"github.com/rickar/cal/v2/us"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
)

var offlineRules = map[string][]*cal.Holiday{
	"AT": at.Holidays,
	"DE": de.Holidays,
	"DK": dk.Holidays,
	"ES": es.Holidays,
	"FI": fi.Holidays,
	"FR": fr.Holidays,
	"GB": gb.Holidays,
	"IT": it.Holidays,
	"NL": nl.Holidays,
	"NO": no.Holidays,
	"SE": se.Holidays,
	"US": us.Holidays,
}

// Offline computes public holidays from built-in rules without network access.
type Offline struct{}

// Countries lists the country codes Offline knows.
func (Offline) Countries() []string {
	out := make([]string, 0, len(offlineRules))
	for c := range offlineRules {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// PublicHolidays returns the holidays of country falling in year, ordered by date.
func (Offline) PublicHolidays(_ context.Context, year int, country string) ([]calendar.SpecialDay, error) {
	rules, ok := offlineRules[strings.ToUpper(country)]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedCountry, country)
	}

	var days []calendar.SpecialDay
	for _, h := range rules {
		actual, _ := h.Calc(year)
		if actual.IsZero() || actual.Year() != year {
			continue
		}
		days = append(days, calendar.SpecialDay{
			Date:      calendar.DateOf(actual),
			Name:      h.Name,
			IsHoliday: true,
		})
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.String() < days[j].Date.String()
	})
	return days, nil
}
