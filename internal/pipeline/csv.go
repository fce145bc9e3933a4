package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ternarybob/signum/internal/models"
)

// csvHeader is the export header row. Column semantics follow the
// merged record: same-day close, delta against the previous day's
// close, and the directional label.
var csvHeader = []string{"Ticker", "Date", "Headlines", "Close", "Price_Change", "Label"}

// WriteCSV writes merged records as UTF-8 comma-separated values.
// Output is deterministic for identical input, so repeated runs over
// the same source data produce byte-identical files.
func WriteCSV(w io.Writer, records []models.MergedRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Ticker,
			models.DateKey(rec.Date),
			rec.Headlines,
			strconv.FormatFloat(rec.Close, 'f', -1, 64),
			strconv.FormatFloat(rec.PriceChange, 'f', -1, 64),
			rec.Label.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
