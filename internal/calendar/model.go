package calendar

// Default presentation parameters, used when a request leaves them at zero.
const (
	DefaultDayFontSizePt        = 7.0
	DefaultMonthFontSizePt      = 7.0
	DefaultWeekNumberFontSizePt = 5.0
	DefaultSpecialDayFontSizePt = 5.0
	DefaultNotesSpaceMM         = 24.0
)

// Model is everything the template needs to render a year.
type Model struct {
	Year                 int
	Lang                 string
	Halves               []Half
	ThemeCSS             string
	DayFontSizePt        float64
	MonthFontSizePt      float64
	WeekNumberFontSizePt float64
	SpecialDayFontSizePt float64
	NotesSpaceMM         float64
	HighlightHolidays    bool
	NotesHTML            string
}

// Half is one printed column block of six months.
type Half struct {
	Months []Month
}

// Month is a localized month name and its days.
type Month struct {
	Name string
	Days []Day
}

// Options carries the presentation parameters attached to a Model.
type Options struct {
	Lang                 string
	ThemeCSS             string
	DayFontSizePt        float64
	MonthFontSizePt      float64
	WeekNumberFontSizePt float64
	SpecialDayFontSizePt float64
	NotesSpaceMM         float64
	HighlightHolidays    bool
	NotesHTML            string
}

// Assemble presents every day of months and groups them into two halves of
// six months each.
func Assemble(year int, months [12][]Date, loc Localizer, nameChars int, idx SpecialDayIndex, opts Options) *Model {
	halves := make([]Half, 2)
	for h := range halves {
		halves[h].Months = make([]Month, 6)
		for i := range halves[h].Months {
			dates := months[h*6+i]
			days := make([]Day, len(dates))
			for j, d := range dates {
				days[j] = PresentDay(d, idx, loc, nameChars)
			}
			halves[h].Months[i] = Month{
				Name: loc.MonthName(dates[0].Month),
				Days: days,
			}
		}
	}

	return &Model{
		Year:                 year,
		Lang:                 opts.Lang,
		Halves:               halves,
		ThemeCSS:             opts.ThemeCSS,
		DayFontSizePt:        orDefault(opts.DayFontSizePt, DefaultDayFontSizePt),
		MonthFontSizePt:      orDefault(opts.MonthFontSizePt, DefaultMonthFontSizePt),
		WeekNumberFontSizePt: orDefault(opts.WeekNumberFontSizePt, DefaultWeekNumberFontSizePt),
		SpecialDayFontSizePt: orDefault(opts.SpecialDayFontSizePt, DefaultSpecialDayFontSizePt),
		NotesSpaceMM:         orDefault(opts.NotesSpaceMM, DefaultNotesSpaceMM),
		HighlightHolidays:    opts.HighlightHolidays,
		NotesHTML:            opts.NotesHTML,
	}
}

// AllDays returns all days of the model in calendar order.
func (m *Model) AllDays() []Day {
	var out []Day
	for _, h := range m.Halves {
		for _, mo := range h.Months {
			out = append(out, mo.Days...)
		}
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
