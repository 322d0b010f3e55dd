// Package calendar builds and renders a printable one-year calendar.
//
// Generate is the single entry point: it validates the request, lays out the
// twelve months, annotates special days, localizes names and renders the
// bundled template to an HTML document. Everything is computed per call; the
// only shared values are the compiled template and the locale table, both
// read-only.
package calendar

// Request is the input of Generate.
type Request struct {
	Year              int
	Locale            string
	DayNameCharacters int
	ThemeCSS          string
	SpecialDays       []SpecialDay

	DayFontSizePt        float64
	MonthFontSizePt      float64
	WeekNumberFontSizePt float64
	SpecialDayFontSizePt float64
	NotesSpaceMM         float64
	DisableHighlight     bool
	NotesMarkdown        string
}

// Generate renders req as a complete HTML document.
func Generate(req Request) (string, error) {
	m, err := BuildModel(req)
	if err != nil {
		return "", err
	}
	return Render(m)
}

// BuildModel validates req and returns the presentation model without
// rendering it.
func BuildModel(req Request) (*Model, error) {
	if err := ValidateYear(req.Year); err != nil {
		return nil, err
	}
	loc, err := LoadLocale(req.Locale)
	if err != nil {
		return nil, err
	}
	if err := ValidateTemplate(); err != nil {
		return nil, err
	}
	notes, err := renderNotes(req.NotesMarkdown)
	if err != nil {
		return nil, err
	}

	months := BuildMonths(req.Year)
	idx := NewSpecialDayIndex(req.SpecialDays)
	return Assemble(req.Year, months, loc, req.DayNameCharacters, idx, Options{
		Lang:                 loc.Language(),
		ThemeCSS:             req.ThemeCSS,
		DayFontSizePt:        req.DayFontSizePt,
		MonthFontSizePt:      req.MonthFontSizePt,
		WeekNumberFontSizePt: req.WeekNumberFontSizePt,
		SpecialDayFontSizePt: req.SpecialDayFontSizePt,
		NotesSpaceMM:         req.NotesSpaceMM,
		HighlightHolidays:    !req.DisableHighlight,
		NotesHTML:            notes,
	}), nil
}
