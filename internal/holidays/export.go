package holidays

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	ics "github.com/arran4/golang-ical"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
)

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatICS  = "ics"

	ICSProductID = "-//klabast//yearcal//EN"
)

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = fmt.Errorf("unknown format (use %s, %s or %s)", FormatJSON, FormatCSV, FormatICS)

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Write exports days in format. name titles the ICS calendar and stamp is
// used as DTSTAMP of every event.
func Write(w io.Writer, format, name string, days []calendar.SpecialDay, stamp time.Time) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, days)
	case FormatCSV:
		return WriteCSV(w, days)
	case FormatICS:
		return WriteICS(w, name, days, stamp)
	default:
		return ErrUnknownFormat
	}
}

// WriteJSON writes days in the special-days file format.
func WriteJSON(w io.Writer, days []calendar.SpecialDay) error {
	if days == nil {
		days = []calendar.SpecialDay{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(days)
}

// WriteCSV writes one row per day with a header line.
func WriteCSV(w io.Writer, days []calendar.SpecialDay) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "name", "is_holiday"}); err != nil {
		return err
	}
	for _, d := range days {
		if err := cw.Write([]string{d.Date.String(), d.Name, strconv.FormatBool(d.IsHoliday)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteICS writes days as all-day events of an iCalendar feed.
func WriteICS(w io.Writer, name string, days []calendar.SpecialDay, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ICSProductID)
	cal.SetXWRCalName(name)

	for _, d := range days {
		// UID must be stable for calendar clients to update events in place
		ev := cal.AddEvent(fmt.Sprintf("%s-%s@yearcal", d.Date, slug(d.Name)))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(d.Date.Time())
		ev.SetAllDayEndAt(d.Date.Time().AddDate(0, 0, 1))
		ev.SetSummary(d.Name)
		if d.IsHoliday {
			ev.SetProperty(ics.ComponentPropertyCategories, "HOLIDAY")
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
