package marketdata

import (
	"fmt"
	"time"
)

// APIError represents an error from the market-data API.
type APIError struct {
	StatusCode int
	Message    string
	Ticker     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("market data API error for %s: %s (status: %d)", e.Ticker, e.Message, e.StatusCode)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("market data rate limit exceeded, retry after %v", e.RetryAfter)
}
