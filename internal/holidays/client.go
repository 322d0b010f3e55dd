package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/yearcal/internal/calendar"
)

const (
	DefaultBaseURL = "https://date.nager.at"
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes bounds the body read from the API.
	maxResponseBytes = 1 << 20
)

type nagerHoliday struct {
	Date      calendar.Date `json:"date"`
	LocalName string        `json:"localName"`
}

// Client fetches public holidays from a Nager.Date compatible API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PublicHolidays fetches the holidays of country in year. Every entry is a holiday
// named by its local name.
func (c *Client) PublicHolidays(ctx context.Context, year int, country string) ([]calendar.SpecialDay, error) {
	endpoint := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, url.PathEscape(strings.ToUpper(country)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("closing holiday response", zap.Error(err))
		}
	}()

	c.logger.Debug("holiday api response",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, endpoint, resp.Status)
	}

	var raw []nagerHoliday
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	days := make([]calendar.SpecialDay, len(raw))
	for i, h := range raw {
		days[i] = calendar.SpecialDay{Date: h.Date, Name: h.LocalName, IsHoliday: true}
	}
	return days, nil
}
