// src/exporter/csv.go
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/username/salesdash/src/models"
)

// Timestamp layout used for exported invoice dates.
const exportDateLayout = "2006-01-02 15:04:05"

// Header of the exported CSV: the input column set plus the derived
// TotalPrice and MonthYear columns.
var exportHeader = []string{
	"InvoiceNo",
	"StockCode",
	"Description",
	"Quantity",
	"UnitPrice",
	"InvoiceDate",
	"CustomerID",
	"Country",
	"TotalPrice",
	"MonthYear",
}

// Filename returns the conventional download name for a country's export.
func Filename(country string) string {
	return fmt.Sprintf("%s_filtered_data.csv", country)
}

// WriteCSV serializes a filtered view as delimited text with a header row.
func WriteCSV(w io.Writer, view []models.CleanTransaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range view {
		record := []string{
			tx.InvoiceNo,
			tx.StockCode,
			tx.Description,
			strconv.FormatInt(tx.Quantity, 10),
			tx.UnitPrice.String(),
			tx.InvoiceDate.Format(exportDateLayout),
			tx.CustomerID,
			tx.Country,
			tx.TotalPrice.String(),
			tx.MonthYear,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for invoice %s: %w", tx.InvoiceNo, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
