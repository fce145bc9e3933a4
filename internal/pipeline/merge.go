package pipeline

import (
	"time"

	"github.com/ternarybob/signum/internal/models"
)

// headlineSeparator joins multiple headlines sharing one (ticker, date).
const headlineSeparator = " , "

func joinKey(ticker string, date time.Time) string {
	return ticker + "|" + models.DateKey(date)
}

// Group partitions cleaned headlines by (ticker, date). Headline texts
// within a group are concatenated in original row order. Group order
// follows first appearance, which keeps pipeline output deterministic.
func Group(records []models.CleanHeadlineRecord) []models.GroupedHeadline {
	var groups []models.GroupedHeadline
	index := make(map[string]int)

	for _, rec := range records {
		key := joinKey(rec.Ticker, rec.Date)
		if i, ok := index[key]; ok {
			groups[i].Headlines += headlineSeparator + rec.Headline
			continue
		}
		index[key] = len(groups)
		groups = append(groups, models.GroupedHeadline{
			Ticker:    rec.Ticker,
			Date:      rec.Date,
			Headlines: rec.Headline,
		})
	}

	return groups
}

// Merge left-joins grouped headlines against the price series twice:
// once on (ticker, date) for the same-day close, and once against a
// view shifted forward one calendar day, so that row (ticker, d) picks
// up the close recorded at (ticker, d-1). Rows missing either side of
// the difference are dropped (weekends, holidays, range edges); the
// dropped count is returned for diagnostics.
func Merge(groups []models.GroupedHeadline, prices []models.PriceRecord) ([]models.MergedRecord, int) {
	closes := make(map[string]float64, len(prices))
	prevCloses := make(map[string]float64, len(prices))
	for _, p := range prices {
		closes[joinKey(p.Ticker, p.Date)] = p.Close
		prevCloses[joinKey(p.Ticker, p.Date.AddDate(0, 0, 1))] = p.Close
	}

	merged := make([]models.MergedRecord, 0, len(groups))
	dropped := 0

	for _, g := range groups {
		key := joinKey(g.Ticker, g.Date)
		sameDay, haveClose := closes[key]
		prev, havePrev := prevCloses[key]
		if !haveClose || !havePrev {
			dropped++
			continue
		}

		change := sameDay - prev
		merged = append(merged, models.MergedRecord{
			Ticker:      g.Ticker,
			Date:        g.Date,
			Headlines:   g.Headlines,
			Close:       sameDay,
			PriceChange: change,
			Label:       labelFor(change),
		})
	}

	return merged, dropped
}

// labelFor maps a price delta to its direction. An exactly unchanged
// close is kept distinct rather than folded into the down label.
func labelFor(change float64) models.Label {
	switch {
	case change > 0:
		return models.LabelUp
	case change < 0:
		return models.LabelDown
	default:
		return models.LabelFlat
	}
}
