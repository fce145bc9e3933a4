package pipeline

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/signum/internal/models"
)

func TestWriteCSV(t *testing.T) {
	records := []models.MergedRecord{
		{
			Ticker:      "AMZN",
			Date:        day(3),
			Headlines:   "amazon beats earnings , cloud unit keeps growing",
			Close:       152.00,
			PriceChange: 2.00,
			Label:       models.LabelUp,
		},
		{
			Ticker:      "META",
			Date:        day(3),
			Headlines:   "meta slides",
			Close:       300.50,
			PriceChange: -9.50,
			Label:       models.LabelDown,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Ticker", "Date", "Headlines", "Close", "Price_Change", "Label"}, rows[0])
	assert.Equal(t, []string{"AMZN", "2024-01-03", "amazon beats earnings , cloud unit keeps growing", "152", "2", "1"}, rows[1])
	assert.Equal(t, []string{"META", "2024-01-03", "meta slides", "300.5", "-9.5", "-1"}, rows[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // Header only
}
