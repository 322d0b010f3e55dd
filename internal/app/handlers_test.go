package app

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
	"github.com/klabast/wb-services/yearcal/internal/holidays"
)

var fixedNow = time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)

type fakeSource struct {
	days    []calendar.SpecialDay
	err     error
	country string
	calls   int
}

func (f *fakeSource) PublicHolidays(_ context.Context, _ int, country string) ([]calendar.SpecialDay, error) {
	f.calls++
	f.country = country
	return f.days, f.err
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIndexHTML([]byte("<html>form</html>")),
	}
	s, err := NewServer(Config{Port: DefaultPort}, nil, append(base, opts...)...)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleCalendarDefaults(t *testing.T) {
	h := newTestServer(t).Routes()
	w := get(t, h, "/calendar", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "<title>2024</title>")
	assert.Contains(t, body, `lang="en"`)
	assert.Equal(t, 366, strings.Count(body, `<li class="day`))
	assert.NotEmpty(t, w.Header().Get("ETag"))
}

func TestHandleCalendarETag(t *testing.T) {
	h := newTestServer(t).Routes()
	first := get(t, h, "/calendar?year=2025&locale=sv-SE", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.True(t, strings.HasPrefix(etag, `"`) && len(etag) == 66, etag)

	second := get(t, h, "/calendar?year=2025&locale=sv-SE", nil)
	assert.Equal(t, etag, second.Header().Get("ETag"))

	cached := get(t, h, "/calendar?year=2025&locale=sv-SE", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())

	other := get(t, h, "/calendar?year=2026&locale=sv-SE", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusOK, other.Code)
	assert.NotEqual(t, etag, other.Header().Get("ETag"))
}

func TestHandleCalendarSpecialDays(t *testing.T) {
	h := newTestServer(t).Routes()
	q := url.Values{}
	q.Set("year", "2024")
	q.Set("special_days", `[{"date":"2024-12-25","name":"<img src=x onerror=alert(1)>Christmas","is_holiday":true}]`)

	w := get(t, h, "/calendar?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "Christmas")
	assert.NotContains(t, body, "onerror")
	assert.Equal(t, 1, strings.Count(body, " holiday\""))
}

func TestHandleCalendarPublicHolidays(t *testing.T) {
	src := &fakeSource{days: []calendar.SpecialDay{
		{Date: calendar.Date{Year: 2024, Month: time.June, Day: 6}, Name: "Nationaldagen", IsHoliday: true},
	}}
	h := newTestServer(t, WithHolidaySource(src)).Routes()

	w := get(t, h, "/calendar?year=2024&locale=sv-SE&public_holidays=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "SE", src.country)
	assert.Contains(t, w.Body.String(), "Nationaldagen")
}

func TestHandleCalendarErrors(t *testing.T) {
	failing := &fakeSource{err: holidays.ErrFetch}
	h := newTestServer(t, WithHolidaySource(failing)).Routes()

	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"year not a number", "year=abc", http.StatusBadRequest, "year must be an integer"},
		{"year out of range", "year=10000", http.StatusBadRequest, "year must be between 1 and 9999, got 10000"},
		{"unknown locale", "locale=xx-YY", http.StatusBadRequest, "unknown locale 'xx-YY'"},
		{"unknown theme", "theme=neon", http.StatusBadRequest, "unknown theme"},
		{"bad special days", "special_days=nope", http.StatusBadRequest, "special days"},
		{"holiday api down", "public_holidays=1", http.StatusBadGateway, "failed to fetch holidays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, "/calendar?"+tt.query, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestHandleCalendarValidatesBeforeFetchingHolidays(t *testing.T) {
	tests := []struct {
		name  string
		query string
		body  string
	}{
		{"year zero", "year=0&public_holidays=1", "year must be between 1 and 9999, got 0"},
		{"year too large", "year=10000&locale=sv-SE&public_holidays=true", "got 10000"},
		{"unknown locale", "locale=xx-YY&public_holidays=1", "unknown locale 'xx-YY'"},
		{"unknown region", "year=2024&locale=en-SE&public_holidays=true", "unknown locale 'en-SE'"},
		{"non-finite size", "day_font_size=NaN&public_holidays=1", "day_font_size must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{err: holidays.ErrFetch}
			h := newTestServer(t, WithHolidaySource(src)).Routes()

			w := get(t, h, "/calendar?"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.Zero(t, src.calls, "holiday source must not be called")
		})
	}
}

func TestHandleHolidays(t *testing.T) {
	h := newTestServer(t).Routes()

	w := get(t, h, "/holidays?year=2025&country=de&format=ics&offline=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="holidays-de-2025.ics"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "DTSTART;VALUE=DATE:20251003")
	assert.Contains(t, w.Body.String(), "DTSTAMP:20240501T093000Z")

	w = get(t, h, "/holidays?year=2025&locale=en-GB&offline=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var days []calendar.SpecialDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	assert.NotEmpty(t, days)
	for _, d := range days {
		assert.Equal(t, 2025, d.Date.Year)
		assert.True(t, d.IsHoliday)
	}
}

func TestHandleHolidaysErrors(t *testing.T) {
	h := newTestServer(t, WithHolidaySource(&fakeSource{err: holidays.ErrParse})).Routes()

	tests := []struct {
		query  string
		status int
	}{
		{"country=DE&format=xml&offline=true", http.StatusBadRequest},
		{"format=json", http.StatusBadRequest},
		{"country=ZZ&offline=true", http.StatusBadRequest},
		{"country=DE&year=0", http.StatusBadRequest},
		{"country=DE&year=soon", http.StatusBadRequest},
		{"country=DE&offline=perhaps", http.StatusBadRequest},
		{"country=DE", http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, h, "/holidays?"+tt.query, nil).Code)
		})
	}
}

func TestGetConfig(t *testing.T) {
	w := get(t, newTestServer(t).Routes(), "/api/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg struct {
		Themes      []string       `json:"themes"`
		Locales     []string       `json:"locales"`
		CurrentYear int            `json:"currentYear"`
		Defaults    map[string]any `json:"defaults"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, []string{"contemporary", "minimalist", "retro"}, cfg.Themes)
	assert.Contains(t, cfg.Locales, "en-GB")
	assert.Equal(t, 2024, cfg.CurrentYear)
	assert.Equal(t, "en-GB", cfg.Defaults["locale"])
	assert.Equal(t, "minimalist", cfg.Defaults["theme"])
}

func TestIndexAndHealth(t *testing.T) {
	h := newTestServer(t).Routes()

	w := get(t, h, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>form</html>", w.Body.String())

	w = get(t, h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = get(t, h, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutesWithAuth(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	h := newTestServer(t, WithAuthenticator(NewAuthenticator("admin", hash, nil))).Routes()

	assert.Equal(t, http.StatusOK, get(t, h, "/healthz", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, h, "/calendar", nil).Code)

	creds := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret-password"))
	assert.Equal(t, http.StatusOK, get(t, h, "/api/config", http.Header{"Authorization": {creds}}).Code)
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"abc"`, `"abc"`))
	assert.True(t, etagMatches(`"x", W/"abc"`, `"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(``, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}
