package finviz

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/signum/internal/models"
)

// newsTableSelector identifies the news table within the quote page.
const newsTableSelector = "table#news-table"

// ParseNewsTable extracts headline rows from a quote page document.
// Each table row holds a date/time cell and an anchor with the headline
// text. The date/time cell carries either two whitespace-separated
// tokens (date, time) or a single time token when the row shares the
// previous row's date; single-token rows produce an empty RawDate which
// downstream normalization forward-fills per ticker.
func ParseNewsTable(ticker string, markup io.Reader) ([]models.HeadlineRecord, error) {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		return nil, &ParseError{Ticker: ticker, Reason: "invalid markup: " + err.Error()}
	}

	table := doc.Find(newsTableSelector).First()
	if table.Length() == 0 {
		return nil, &ParseError{Ticker: ticker, Reason: "news table not found"}
	}

	var records []models.HeadlineRecord

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		headline := strings.TrimSpace(row.Find("a").First().Text())
		if headline == "" {
			// Spacer rows and ad rows carry no anchor
			return
		}

		rawDate, rawTime := splitDateTime(row.Find("td").First().Text())

		records = append(records, models.HeadlineRecord{
			Ticker:   ticker,
			RawDate:  rawDate,
			RawTime:  rawTime,
			Headline: headline,
		})
	})

	return records, nil
}

// splitDateTime splits a date/time cell on whitespace. One token means
// time only; two or more mean (date, time).
func splitDateTime(cell string) (rawDate, rawTime string) {
	tokens := strings.Fields(cell)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return "", tokens[0]
	default:
		return tokens[0], tokens[1]
	}
}
