package calendar

import "strings"

// SpecialDay annotates a date with a name. Only entries with IsHoliday set mark
// the date as a holiday; the others still contribute their name.
type SpecialDay struct {
	Date      Date   `json:"date"`
	Name      string `json:"name"`
	IsHoliday bool   `json:"is_holiday"`
}

// SpecialDayIndex maps a date to its special days in input order.
type SpecialDayIndex map[Date][]SpecialDay

// NewSpecialDayIndex indexes days by date. Entries sharing a date accumulate.
func NewSpecialDayIndex(days []SpecialDay) SpecialDayIndex {
	idx := make(SpecialDayIndex, len(days))
	for _, d := range days {
		idx[d.Date] = append(idx[d.Date], d)
	}
	return idx
}

// Lookup returns the special days on d.
func (idx SpecialDayIndex) Lookup(d Date) []SpecialDay {
	return idx[d]
}

// Names joins the names of all special days on d with ", ".
func (idx SpecialDayIndex) Names(d Date) string {
	entries := idx[d]
	switch len(entries) {
	case 0:
		return ""
	case 1:
		return entries[0].Name
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return strings.Join(names, ", ")
}

// HasHoliday reports whether any special day on d is a holiday.
func (idx SpecialDayIndex) HasHoliday(d Date) bool {
	for _, e := range idx[d] {
		if e.IsHoliday {
			return true
		}
	}
	return false
}
