// Package models defines the record types that flow through the
// news/price labeling pipeline. All records are transient and rebuilt
// in full on every request.
package models

import (
	"fmt"
	"time"
)

// Label is the directional price indicator attached to a merged record.
type Label int8

const (
	// LabelUp indicates the close rose against the previous trading day.
	LabelUp Label = 1
	// LabelDown indicates the close fell against the previous trading day.
	LabelDown Label = -1
	// LabelFlat indicates an exactly unchanged close.
	LabelFlat Label = 0
)

func (l Label) String() string {
	switch l {
	case LabelUp:
		return "1"
	case LabelDown:
		return "-1"
	default:
		return "0"
	}
}

// HeadlineRecord is one scraped news row, exactly as extracted from the
// markup. RawDate is empty when the source row carried only a time token.
type HeadlineRecord struct {
	Ticker   string `json:"ticker"`
	RawDate  string `json:"raw_date"`
	RawTime  string `json:"raw_time"`
	Headline string `json:"headline"`
}

// CleanHeadlineRecord is a headline after text normalization and date
// parsing. Date is always a valid UTC calendar date at midnight; rows
// whose date cannot be resolved never become CleanHeadlineRecords.
type CleanHeadlineRecord struct {
	Ticker   string    `json:"ticker"`
	Date     time.Time `json:"date"`
	Headline string    `json:"headline"`
}

// PriceRecord is one daily close for one ticker. Non-trading days have
// no record. Date is a timezone-naive UTC calendar date.
type PriceRecord struct {
	Date   time.Time `json:"date"`
	Ticker string    `json:"ticker"`
	Close  float64   `json:"close"`
}

// GroupedHeadline is the concatenation of all normalized headlines for
// one (ticker, date) key, joined in original row order.
type GroupedHeadline struct {
	Ticker    string    `json:"ticker"`
	Date      time.Time `json:"date"`
	Headlines string    `json:"headlines"`
}

// MergedRecord is one row of the final labeled dataset. Close is the
// same-day close, PriceChange the delta against the previous calendar
// day's close. Only complete rows survive the merge.
type MergedRecord struct {
	Ticker      string    `json:"ticker"`
	Date        time.Time `json:"date"`
	Headlines   string    `json:"headlines"`
	Close       float64   `json:"close"`
	PriceChange float64   `json:"price_change"`
	Label       Label     `json:"label"`
}

// TickerFailure reports a per-ticker fetch failure from either source.
// Failures isolate the offending ticker; the batch continues.
type TickerFailure struct {
	Ticker string `json:"ticker"`
	Source string `json:"source"` // "news" or "prices"
	Err    string `json:"error"`
}

func (f TickerFailure) String() string {
	return fmt.Sprintf("%s (%s): %s", f.Ticker, f.Source, f.Err)
}

// DateKey formats a calendar date as the canonical join-key component.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// CalendarDate truncates a timestamp to a timezone-naive UTC calendar
// date, discarding time-of-day and offset.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
