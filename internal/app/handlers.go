package app

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/params"
	"github.com/klabast/wb-services/yearcal/internal/themes"
)

// ServeIndex serves the parameter form
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(s.indexHTML); err != nil {
		s.logger.Error("write index html", zap.Error(err))
	}
}

// GetConfig returns what the form needs to offer its choices
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"themes":           themes.Names(),
		"locales":          calendar.SupportedLocales(),
		"holidayCountries": holidays.Offline{}.Countries(),
		"currentYear":      s.now().Year(),
		"defaults":         params.Defaults(s.now()),
	})
}

// HandleCalendar renders a calendar from query parameters
func (s *Server) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	p, err := params.FromQuery(r.URL.Query(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.resolver.Resolve(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	html, err := calendar.Generate(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sum := blake2b.Sum256([]byte(html))
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(html)))
	if _, err := w.Write([]byte(html)); err != nil {
		s.logger.Error("write calendar", zap.Error(err))
	}
}

// HandleHolidays exports public holidays in ICS, CSV or JSON format
func (s *Server) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	year := s.now().Year()
	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: year must be an integer, got '%s'", params.ErrInvalidParameter, raw))
			return
		}
		year = v
	}
	if err := calendar.ValidateYear(year); err != nil {
		s.writeError(w, r, err)
		return
	}

	country := strings.ToUpper(strings.TrimSpace(q.Get("country")))
	if country == "" {
		var ok bool
		if country, ok = holidays.CountryFromLocale(q.Get("locale")); !ok {
			s.writeError(w, r, fmt.Errorf("%w: %s", params.ErrInvalidParameter, ErrMissingCountry))
			return
		}
	}

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = holidays.FormatJSON
	}
	switch format {
	case holidays.FormatJSON, holidays.FormatCSV, holidays.FormatICS:
	default:
		s.writeError(w, r, holidays.ErrUnknownFormat)
		return
	}

	offline, err := params.BoolField(q, "offline", false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var source holidays.Source = s.online
	if offline {
		source = s.offline
	}
	days, err := source.PublicHolidays(r.Context(), year, country)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	name := fmt.Sprintf("Public holidays %s %d", country, year)
	if err := holidays.Write(&buf, format, name, days, s.now()); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", holidays.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="holidays-%s-%d.%s"`, strings.ToLower(country), year, format))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("write holidays", zap.Error(err))
	}
}

// HandleHealth reports liveness
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
