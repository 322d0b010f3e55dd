package calendar

import "time"

// Day is the display record of one calendar date.
type Day struct {
	DayNumber    int
	Weekday      string
	WeekNumber   int
	IsWeekStart  bool
	IsWeekend    bool
	IsMonthStart bool
	IsLastDay    bool
	IsHoliday    bool
	HolidayName  string
}

// PresentDay derives the display record of date. The weekday name is cut to
// nameChars runes before it is capitalized.
func PresentDay(date Date, idx SpecialDayIndex, loc Localizer, nameChars int) Day {
	wd := date.Weekday()
	return Day{
		DayNumber:    date.Day,
		Weekday:      loc.Capitalize(truncateRunes(loc.WeekdayName(wd), nameChars)),
		WeekNumber:   date.ISOWeek(),
		IsWeekStart:  wd == time.Monday,
		IsWeekend:    wd == time.Saturday || wd == time.Sunday,
		IsMonthStart: date.Day == 1,
		IsLastDay:    date.Month == time.December && date.Day == 31,
		IsHoliday:    idx.HasHoliday(date),
		HolidayName:  idx.Names(date),
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
