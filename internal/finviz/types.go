// Package finviz fetches and parses the per-ticker news listing page of a
// finviz-style aggregator. This package centralizes all news-source
// interactions for the application.
package finviz

import (
	"fmt"
)

// FetchError represents a failed page retrieval for one ticker.
type FetchError struct {
	Ticker     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("news fetch failed for %s: %v", e.Ticker, e.Err)
	}
	return fmt.Sprintf("news fetch failed for %s: status %d", e.Ticker, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents markup that does not contain the expected
// news-table element.
type ParseError struct {
	Ticker string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("news parse failed for %s: %s", e.Ticker, e.Reason)
}
