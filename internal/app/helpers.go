package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
	"github.com/klabast/wb-services/yearcal/internal/params"
	"github.com/klabast/wb-services/yearcal/internal/themes"
)

// statusFor maps an error to the HTTP status reported to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, params.ErrInvalidParameter),
		errors.Is(err, calendar.ErrInvalidYear),
		errors.Is(err, calendar.ErrInvalidLocale),
		errors.Is(err, themes.ErrUnknownTheme),
		errors.Is(err, holidays.ErrUnsupportedCountry),
		errors.Is(err, holidays.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, holidays.ErrFetch), errors.Is(err, holidays.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		msg = ErrInternalServer
	} else {
		s.logger.Info("request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, msg, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode json", zap.Error(err))
	}
}

// etagMatches reports whether an If-None-Match header covers etag.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
