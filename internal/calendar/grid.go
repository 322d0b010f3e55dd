package calendar

import "time"

// BuildMonths returns every date of year grouped by month, in ascending order.
// The year must already be validated.
func BuildMonths(year int) [12][]Date {
	var months [12][]Date
	for i := range months {
		month := time.Month(i + 1)
		n := DaysIn(year, month)
		days := make([]Date, n)
		for d := 1; d <= n; d++ {
			days[d-1] = Date{Year: year, Month: month, Day: d}
		}
		months[i] = days
	}
	return months
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
