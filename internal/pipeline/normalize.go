// Package pipeline implements the news/price labeling pipeline: headline
// normalization, grouping, the shifted price join and CSV export.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/signum/internal/models"
)

// nonAlnum matches every character outside the retained class. The
// class is case-insensitive, so lowercasing first is equivalent to
// stripping first.
var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// NormalizeHeadline lowercases headline text and strips every character
// that is not a latin letter, digit or whitespace.
func NormalizeHeadline(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// newsDateLayouts are the calendar-date formats accepted from scraped
// date text, most common first.
var newsDateLayouts = []string{
	"Jan-02-06",
	"Jan-02-2006",
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
}

// ParseNewsDate parses scraped date text into a UTC calendar date.
// The relative tokens "Today" and "Yesterday" used by the news source
// are resolved against now.
func ParseNewsDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	switch strings.ToLower(raw) {
	case "today":
		return models.CalendarDate(now), nil
	case "yesterday":
		return models.CalendarDate(now.AddDate(0, 0, -1)), nil
	}

	for _, layout := range newsDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// Clean normalizes headline text and resolves dates for a sequence of
// scraped rows. Rows with an empty date carry the last valid date seen
// for the same ticker (the source emits a lone time token when a row
// shares the previous row's date). Rows whose date cannot be resolved
// at all are dropped; the dropped count is returned for diagnostics.
func Clean(records []models.HeadlineRecord, now time.Time) ([]models.CleanHeadlineRecord, int) {
	clean := make([]models.CleanHeadlineRecord, 0, len(records))
	lastDate := make(map[string]time.Time)
	dropped := 0

	for _, rec := range records {
		var date time.Time

		if rec.RawDate == "" {
			// Forward-fill from the last dated row for this ticker;
			// rows before any dated row cannot be resolved
			prev, ok := lastDate[rec.Ticker]
			if !ok {
				dropped++
				continue
			}
			date = prev
		} else {
			parsed, err := ParseNewsDate(rec.RawDate, now)
			if err != nil {
				dropped++
				continue
			}
			date = parsed
			lastDate[rec.Ticker] = date
		}

		clean = append(clean, models.CleanHeadlineRecord{
			Ticker:   rec.Ticker,
			Date:     date,
			Headline: NormalizeHeadline(rec.Headline),
		})
	}

	return clean, dropped
}

// DateRange returns the inclusive [min, max] date range across the
// whole cleaned set. ok is false when the set is empty.
func DateRange(records []models.CleanHeadlineRecord) (from, to time.Time, ok bool) {
	for _, rec := range records {
		if !ok {
			from, to, ok = rec.Date, rec.Date, true
			continue
		}
		if rec.Date.Before(from) {
			from = rec.Date
		}
		if rec.Date.After(to) {
			to = rec.Date
		}
	}
	return from, to, ok
}
