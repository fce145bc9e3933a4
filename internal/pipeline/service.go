package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/signum/internal/models"
)

// NewsSource yields scraped headline rows for one ticker.
type NewsSource interface {
	FetchNews(ctx context.Context, ticker string) ([]models.HeadlineRecord, error)
}

// PriceSource yields the daily close series for one ticker over an
// inclusive date range.
type PriceSource interface {
	DailyCloses(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceRecord, error)
}

// Result is the outcome of one pipeline run. Failures lists tickers
// whose fetch failed; their contribution is missing but the run itself
// succeeded for the remaining tickers.
type Result struct {
	Records  []models.MergedRecord  `json:"records"`
	Failures []models.TickerFailure `json:"failures,omitempty"`

	// Diagnostics
	RawRows      int `json:"raw_rows"`      // Scraped headline rows
	CleanRows    int `json:"clean_rows"`    // Rows surviving normalization
	DroppedRows  int `json:"dropped_rows"`  // Rows dropped for unresolvable dates
	DroppedDates int `json:"dropped_dates"` // (ticker, date) groups dropped by join gaps
}

// Service runs the extract/normalize/merge pipeline. One run is a
// single-shot batch transform; nothing is retained between runs.
type Service struct {
	news   NewsSource
	prices PriceSource
	logger arbor.ILogger
	now    func() time.Time
}

// NewService creates a pipeline service.
func NewService(news NewsSource, prices PriceSource, logger arbor.ILogger) *Service {
	return &Service{
		news:   news,
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock used to resolve relative date tokens.
// Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run executes the pipeline for a set of tickers: scrape headlines per
// ticker, normalize, fetch the daily close series over the shared
// [min, max] headline date range, then group and merge into labeled
// records. Fetch failures are isolated to their ticker and reported in
// the result; the batch continues with the rest.
func (s *Service) Run(ctx context.Context, tickers []string) (*Result, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to process")
	}

	result := &Result{}

	// Extract: sequential per ticker, ticker-major row order
	var raw []models.HeadlineRecord
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := s.news.FetchNews(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Headline fetch failed")
			result.Failures = append(result.Failures, models.TickerFailure{
				Ticker: ticker,
				Source: "news",
				Err:    err.Error(),
			})
			continue
		}
		raw = append(raw, rows...)
	}
	result.RawRows = len(raw)

	// Normalize
	clean, dropped := Clean(raw, s.now())
	result.CleanRows = len(clean)
	result.DroppedRows = dropped
	if dropped > 0 {
		s.logger.Info().Int("dropped", dropped).Msg("Headline rows dropped during normalization")
	}

	from, to, ok := DateRange(clean)
	if !ok {
		s.logger.Warn().Msg("No headline rows survived normalization")
		result.Records = []models.MergedRecord{}
		return result, nil
	}

	// Fetch: one shared date range across all tickers
	var prices []models.PriceRecord
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		series, err := s.prices.DailyCloses(ctx, ticker, from, to)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Price fetch failed")
			result.Failures = append(result.Failures, models.TickerFailure{
				Ticker: ticker,
				Source: "prices",
				Err:    err.Error(),
			})
			continue
		}
		if len(series) == 0 {
			s.logger.Warn().Str("ticker", ticker).Msg("Empty price history")
			continue
		}
		prices = append(prices, series...)
	}

	// Merge
	groups := Group(clean)
	merged, droppedDates := Merge(groups, prices)
	result.Records = merged
	result.DroppedDates = droppedDates

	s.logger.Info().
		Int("tickers", len(tickers)).
		Int("raw_rows", result.RawRows).
		Int("clean_rows", result.CleanRows).
		Int("groups", len(groups)).
		Int("records", len(merged)).
		Int("failures", len(result.Failures)).
		Msg("Pipeline run completed")

	return result, nil
}
