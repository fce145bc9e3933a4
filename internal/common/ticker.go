package common

import (
	"fmt"
	"strings"
)

// maxTickerLen bounds a single symbol. Real symbols top out around
// 5-6 characters plus a class suffix (e.g. "BRK.B").
const maxTickerLen = 10

// ParseTicker normalizes a single ticker symbol: whitespace-trimmed and
// uppercased. Returns an error when the symbol is empty or contains
// characters outside letters, digits, '.' and '-'.
func ParseTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", fmt.Errorf("empty ticker symbol")
	}
	if len(ticker) > maxTickerLen {
		return "", fmt.Errorf("ticker %q too long", ticker)
	}
	for _, r := range ticker {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", fmt.Errorf("ticker %q contains invalid character %q", ticker, r)
		}
	}
	return ticker, nil
}

// ParseTickerList parses comma-separated free-text ticker input
// (e.g. "dell, AMZN ,meta"). Symbols are trimmed, uppercased and
// deduplicated, preserving first-seen order. Blank entries between
// commas are skipped; an invalid symbol or an empty result is an error.
func ParseTickerList(input string) ([]string, error) {
	var tickers []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ticker, err := ParseTicker(part)
		if err != nil {
			return nil, err
		}
		if !seen[ticker] {
			seen[ticker] = true
			tickers = append(tickers, ticker)
		}
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("no ticker symbols provided")
	}
	return tickers, nil
}

// NormalizeFilename trims an output filename and appends the ".csv"
// suffix when absent. An empty name falls back to the provided default.
func NormalizeFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}
