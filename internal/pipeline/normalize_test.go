package pipeline

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/signum/internal/models"
)

func TestNormalizeHeadline(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Amazon Beats Earnings!!", "amazon beats earnings"},
		{"AI & Cloud: What's Next?", "ai  cloud whats next"},
		{"Q4 2024 results", "q4 2024 results"},
		{"", ""},
		{"///***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeadline(tt.input))
		})
	}
}

func TestNormalizeHeadline_OnlyRetainedClass(t *testing.T) {
	retained := regexp.MustCompile(`^[a-z0-9\s]*$`)
	inputs := []string{
		"UPPER lower 123",
		"Símbolos, ação & emoji 🚀",
		"tabs\tand\nnewlines stay",
	}
	for _, in := range inputs {
		out := NormalizeHeadline(in)
		assert.True(t, retained.MatchString(out), "normalize(%q) = %q contains stripped characters", in, out)
	}
}

func TestParseNewsDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))

	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"Jan-02-24", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"Jan-02-2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"01/02/2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"02-Jan-2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"Today", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Yesterday", time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), false},
		{"09:15AM", time.Time{}, true},
		{"not-a-date", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseNewsDate(tt.raw, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseNewsDate(%q) = %v, want %v", tt.raw, got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestClean(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	raw := []models.HeadlineRecord{
		{Ticker: "AMZN", RawDate: "Jan-02-24", RawTime: "09:15AM", Headline: "Amazon Beats Earnings!!"},
		{Ticker: "AMZN", RawDate: "", RawTime: "10:42AM", Headline: "Cloud unit keeps growing"},
		{Ticker: "AMZN", RawDate: "Jan-03-24", RawTime: "08:00AM", Headline: "Analysts raise targets"},
		{Ticker: "META", RawDate: "garbage", RawTime: "07:00AM", Headline: "Unparseable row"},
	}

	clean, dropped := Clean(raw, now)
	require.Len(t, clean, 3)
	assert.Equal(t, 1, dropped)

	// Raw ("AMZN", "Jan-02-24", "09:15AM", "Amazon Beats Earnings!!")
	// normalizes to 2024-01-02 / "amazon beats earnings"
	assert.Equal(t, "AMZN", clean[0].Ticker)
	assert.True(t, clean[0].Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "amazon beats earnings", clean[0].Headline)

	// Time-only row forward-fills the previous row's date
	assert.True(t, clean[1].Date.Equal(clean[0].Date))

	assert.True(t, clean[2].Date.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestClean_ForwardFillIsPerTicker(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	raw := []models.HeadlineRecord{
		{Ticker: "AMZN", RawDate: "Jan-02-24", Headline: "a"},
		// META has not seen a dated row yet; cannot inherit AMZN's date
		{Ticker: "META", RawDate: "", RawTime: "09:00AM", Headline: "b"},
		{Ticker: "META", RawDate: "Jan-05-24", Headline: "c"},
		{Ticker: "META", RawDate: "", RawTime: "11:00AM", Headline: "d"},
	}

	clean, dropped := Clean(raw, now)
	require.Len(t, clean, 3)
	assert.Equal(t, 1, dropped)
	assert.True(t, clean[1].Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, clean[2].Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	records := []models.CleanHeadlineRecord{
		{Ticker: "AMZN", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Ticker: "META", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Ticker: "AMZN", Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
	}

	from, to, ok := DateRange(records)
	require.True(t, ok)
	assert.True(t, from.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)))

	_, _, ok = DateRange(nil)
	assert.False(t, ok)
}
