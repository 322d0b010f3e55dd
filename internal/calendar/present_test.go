package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentDayFlags(t *testing.T) {
	loc, err := LoadLocale("en-GB")
	require.NoError(t, err)
	idx := NewSpecialDayIndex(nil)

	tests := []struct {
		name string
		date Date
		want Day
	}{
		{
			name: "monday month start",
			date: Date{Year: 2024, Month: time.January, Day: 1},
			want: Day{DayNumber: 1, Weekday: "M", WeekNumber: 1, IsWeekStart: true, IsMonthStart: true},
		},
		{
			name: "saturday",
			date: Date{Year: 2024, Month: time.January, Day: 6},
			want: Day{DayNumber: 6, Weekday: "S", WeekNumber: 1, IsWeekend: true},
		},
		{
			name: "last day in next iso year",
			date: Date{Year: 2024, Month: time.December, Day: 31},
			want: Day{DayNumber: 31, Weekday: "T", WeekNumber: 1, IsLastDay: true},
		},
		{
			name: "week 53",
			date: Date{Year: 2021, Month: time.January, Day: 1},
			want: Day{DayNumber: 1, Weekday: "F", WeekNumber: 53, IsMonthStart: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PresentDay(tt.date, idx, loc, 1))
		})
	}
}

func TestPresentDayWeekdayLength(t *testing.T) {
	monday := Date{Year: 2024, Month: time.January, Day: 1}
	idx := NewSpecialDayIndex(nil)

	tests := []struct {
		locale string
		chars  int
		want   string
	}{
		{"en-GB", 0, ""},
		{"en-GB", -2, ""},
		{"en-GB", 2, "Mo"},
		{"en-GB", 3, "Mon"},
		{"en-GB", 50, "Monday"},
		{"sv-SE", 3, "Mån"},
		{"fr-FR", 1, "L"},
		{"pt-BR", 5, "Segun"},
	}
	for _, tt := range tests {
		loc, err := LoadLocale(tt.locale)
		require.NoError(t, err)
		assert.Equal(t, tt.want, PresentDay(monday, idx, loc, tt.chars).Weekday, "%s/%d", tt.locale, tt.chars)
	}
}

func TestPresentDayHolidays(t *testing.T) {
	loc, err := LoadLocale("en-GB")
	require.NoError(t, err)

	xmas := Date{Year: 2024, Month: time.December, Day: 25}
	note := Date{Year: 2024, Month: time.June, Day: 3}
	idx := NewSpecialDayIndex([]SpecialDay{
		{Date: xmas, Name: "Christmas", IsHoliday: true},
		{Date: xmas, Name: "Office Closure", IsHoliday: false},
		{Date: note, Name: "Dentist", IsHoliday: false},
	})

	day := PresentDay(xmas, idx, loc, 1)
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "Christmas, Office Closure", day.HolidayName)

	day = PresentDay(note, idx, loc, 1)
	assert.False(t, day.IsHoliday)
	assert.Equal(t, "Dentist", day.HolidayName)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "må", truncateRunes("måndag", 2))
	assert.Equal(t, "måndag", truncateRunes("måndag", 6))
	assert.Equal(t, "", truncateRunes("", 3))
}
