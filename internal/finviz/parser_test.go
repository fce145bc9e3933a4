package finviz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotePageFixture = `<!DOCTYPE html>
<html><body>
<table id="other-table"><tr><td>noise</td></tr></table>
<table id="news-table" class="fullview-news-outer">
  <tr>
    <td align="right">Jan-02-24 09:15AM</td>
    <td align="left"><a href="https://example.com/1" target="_blank">Amazon Beats Earnings!!</a></td>
  </tr>
  <tr>
    <td align="right">10:42AM</td>
    <td align="left"><a href="https://example.com/2" target="_blank">Cloud unit keeps growing</a></td>
  </tr>
  <tr>
    <td align="right">Jan-03-24 08:00AM</td>
    <td align="left"><a href="https://example.com/3" target="_blank">Analysts raise targets</a></td>
  </tr>
</table>
</body></html>`

func TestParseNewsTable(t *testing.T) {
	records, err := ParseNewsTable("AMZN", strings.NewReader(quotePageFixture))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "AMZN", records[0].Ticker)
	assert.Equal(t, "Jan-02-24", records[0].RawDate)
	assert.Equal(t, "09:15AM", records[0].RawTime)
	assert.Equal(t, "Amazon Beats Earnings!!", records[0].Headline)

	// Single-token cell: time only, date left empty for forward-fill
	assert.Equal(t, "", records[1].RawDate)
	assert.Equal(t, "10:42AM", records[1].RawTime)
	assert.Equal(t, "Cloud unit keeps growing", records[1].Headline)

	assert.Equal(t, "Jan-03-24", records[2].RawDate)
	assert.Equal(t, "08:00AM", records[2].RawTime)
}

func TestParseNewsTable_RowOrderPreserved(t *testing.T) {
	records, err := ParseNewsTable("AMZN", strings.NewReader(quotePageFixture))
	require.NoError(t, err)

	want := []string{
		"Amazon Beats Earnings!!",
		"Cloud unit keeps growing",
		"Analysts raise targets",
	}
	for i, headline := range want {
		assert.Equal(t, headline, records[i].Headline)
	}
}

func TestParseNewsTable_MissingTable(t *testing.T) {
	markup := `<html><body><p>Symbol not found</p></body></html>`

	_, err := ParseNewsTable("NOPE", strings.NewReader(markup))
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "NOPE", parseErr.Ticker)
}

func TestParseNewsTable_SkipsRowsWithoutAnchor(t *testing.T) {
	markup := `<html><body><table id="news-table">
	  <tr><td>Jan-02-24 09:15AM</td><td><a>Real headline</a></td></tr>
	  <tr><td colspan="2">sponsored spacer</td></tr>
	</table></body></html>`

	records, err := ParseNewsTable("AMZN", strings.NewReader(markup))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Real headline", records[0].Headline)
}

func TestSplitDateTime(t *testing.T) {
	tests := []struct {
		cell     string
		wantDate string
		wantTime string
	}{
		{"Jan-02-24 09:15AM", "Jan-02-24", "09:15AM"},
		{"  Jan-02-24   09:15AM  ", "Jan-02-24", "09:15AM"},
		{"09:15AM", "", "09:15AM"},
		{"Today 04:05PM", "Today", "04:05PM"},
		{"", "", ""},
	}

	for _, tt := range tests {
		gotDate, gotTime := splitDateTime(tt.cell)
		assert.Equal(t, tt.wantDate, gotDate, "cell %q", tt.cell)
		assert.Equal(t, tt.wantTime, gotTime, "cell %q", tt.cell)
	}
}
