// Package marketdata provides a client for an EODHD-style end-of-day
// price API. This package centralizes all market-data interactions for
// the application.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/signum/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the market-data API.
	DefaultBaseURL = "https://eodhd.com/api"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10
)

// Client is a market-data API client.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new market-data API client.
func NewClient(apiToken string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// eodRow is one row of the daily series as returned by the API.
type eodRow struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// DailyCloses retrieves the daily close series for a ticker over the
// inclusive date range [from, to]. Each row is tagged with the ticker
// and its date normalized to a timezone-naive UTC calendar date.
//
// A ticker with no available history (unknown symbol, delisted) yields
// an empty slice and a nil error; the caller reports it as a warning.
func (c *Client) DailyCloses(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	params := url.Values{}
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("period", "d")
	params.Set("order", "a")
	params.Set("fmt", "json")
	if c.apiToken != "" {
		params.Set("api_token", c.apiToken)
	}

	reqURL := fmt.Sprintf("%s/eod/%s?%s", c.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Str("from", from.Format("2006-01-02")).
			Str("to", to.Format("2006-01-02")).
			Msg("Market data request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Unknown symbols come back 404; treat as an empty series
	if resp.StatusCode == http.StatusNotFound {
		if c.logger != nil {
			c.logger.Warn().Str("ticker", ticker).Msg("No price history available")
		}
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Ticker:     ticker,
		}
	}

	var rows []eodRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]models.PriceRecord, 0, len(rows))
	for _, row := range rows {
		// Dates arrive as "2006-01-02" or with a time/offset suffix;
		// either way only the calendar date is kept
		t, err := parseSeriesDate(row.Date)
		if err != nil {
			continue
		}
		records = append(records, models.PriceRecord{
			Date:   t,
			Ticker: ticker,
			Close:  row.Close,
		})
	}

	return records, nil
}

// parseSeriesDate parses a series date string and truncates it to a
// timezone-naive UTC calendar date.
func parseSeriesDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return models.CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized series date %q", s)
}
