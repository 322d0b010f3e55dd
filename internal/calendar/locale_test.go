package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocaleNormalizes(t *testing.T) {
	for _, code := range []string{"en-GB", "en_GB", "EN-gb", " en-GB "} {
		loc, err := LoadLocale(code)
		require.NoError(t, err, code)
		assert.Equal(t, "en-GB", loc.Code())
		assert.Equal(t, "en", loc.Language())
	}
}

func TestLoadLocaleLanguageOnly(t *testing.T) {
	loc, err := LoadLocale("de")
	require.NoError(t, err)
	assert.Equal(t, "Montag", loc.WeekdayName(time.Monday))
}

func TestLoadLocaleRejectsUnknown(t *testing.T) {
	for _, code := range []string{"xx-YY", "en-SE", "", "sr-Latn-RS", "not a locale"} {
		_, err := LoadLocale(code)
		require.Error(t, err, code)
		assert.True(t, errors.Is(err, ErrInvalidLocale), code)

		var le *InvalidLocaleError
		require.True(t, errors.As(err, &le), code)
		assert.Equal(t, code, le.Locale)
	}
}

func TestMonthNamesAreCapitalized(t *testing.T) {
	tests := []struct {
		locale string
		month  time.Month
		want   string
	}{
		{"en-GB", time.January, "January"},
		{"sv-SE", time.January, "Januari"},
		{"fr-FR", time.August, "Août"},
		{"de-DE", time.January, "Januar"},
		{"de-AT", time.January, "Jänner"},
		{"pl-PL", time.October, "Październik"},
		{"cs-CZ", time.February, "Únor"},
	}
	for _, tt := range tests {
		loc, err := LoadLocale(tt.locale)
		require.NoError(t, err)
		assert.Equal(t, tt.want, loc.MonthName(tt.month), tt.locale)
	}
}

func TestCapitalizeIsUnicodeAware(t *testing.T) {
	tr, err := LoadLocale("tr-TR")
	require.NoError(t, err)
	assert.Equal(t, "İstanbul", tr.Capitalize("istanbul"))

	pl, err := LoadLocale("pl-PL")
	require.NoError(t, err)
	assert.Equal(t, "Środa", pl.Capitalize("środa"))
	assert.Equal(t, "", pl.Capitalize(""))
}

func TestSupportedLocales(t *testing.T) {
	codes := SupportedLocales()
	assert.Contains(t, codes, "en-GB")
	assert.Contains(t, codes, "sv-SE")
	assert.Contains(t, codes, "de-DE")
	assert.IsIncreasing(t, codes)

	for _, code := range codes {
		_, err := LoadLocale(code)
		assert.NoError(t, err, code)
	}
}
