package finviz

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/signum/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the news listing pages.
	DefaultBaseURL = "https://finviz.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	// The news source is a public page, not an API; stay conservative.
	DefaultRateLimit = 2

	// DefaultUserAgent is sent with every request. The page returns 403
	// to clients without a browser-like user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches news listing pages by ticker.
type Client struct {
	baseURL    string
	userAgent  string
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

// WithUserAgent sets a custom user-agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
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

// NewClient creates a new news page client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
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

// FetchNews retrieves the news listing page for a ticker and extracts
// one HeadlineRecord per news row, in page order.
func (c *Client) FetchNews(ctx context.Context, ticker string) ([]models.HeadlineRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Ticker: ticker, Err: err}
	}

	reqURL := fmt.Sprintf("%s/quote.ashx?t=%s", c.baseURL, url.QueryEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Ticker: ticker, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Str("url", reqURL).
			Msg("News page request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Ticker: ticker, StatusCode: resp.StatusCode}
	}

	records, err := ParseNewsTable(ticker, resp.Body)
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Int("rows", len(records)).
			Msg("News rows extracted")
	}

	return records, nil
}
