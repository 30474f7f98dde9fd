package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/salesdash/src/models"
)

func exportRow(invoiceNo string, quantity int64, unitPrice string) models.CleanTransaction {
	price := decimal.RequireFromString(unitPrice)
	date := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return models.CleanTransaction{
		InvoiceNo:   invoiceNo,
		StockCode:   "85123A",
		Description: "WHITE HANGING HEART",
		Quantity:    quantity,
		UnitPrice:   price,
		InvoiceDate: date,
		CustomerID:  "17850",
		Country:     "United Kingdom",
		TotalPrice:  decimal.NewFromInt(quantity).Mul(price),
		MonthYear:   "2024-01",
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "France_filtered_data.csv", Filename("France"))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	view := []models.CleanTransaction{
		exportRow("1", 2, "5.25"),
		exportRow("2", -1, "3.10"),
		exportRow("3", 4, "0.85"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, view))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(view)+1)

	assert.Equal(t, exportHeader, records[0])

	// Parsing the export back yields the same row count and identical
	// total_price values.
	for i, tx := range view {
		record := records[i+1]
		assert.Equal(t, tx.InvoiceNo, record[0])
		parsedTotal, err := decimal.NewFromString(record[8])
		require.NoError(t, err)
		assert.True(t, parsedTotal.Equal(tx.TotalPrice),
			"row %d total price: got %s want %s", i, parsedTotal, tx.TotalPrice)
		assert.Equal(t, tx.MonthYear, record[9])
	}

	assert.Equal(t, "2024-01-15 10:30:00", records[1][5])
}

func TestWriteCSVEmptyViewStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exportHeader, records[0])
}
