// src/parsers/csv_parser.go
package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/models"
)

// ErrInvalidSchema indicates the CSV header is missing a required column.
var ErrInvalidSchema = errors.New("sales data schema invalid")

// Required columns of the sales export. StockCode is carried through when
// present but is not required.
var requiredColumns = []string{
	"InvoiceNo",
	"Description",
	"Quantity",
	"UnitPrice",
	"InvoiceDate",
	"CustomerID",
	"Country",
}

// SalesCSVParser reads the raw sales transaction export. Real-world exports
// of this dataset are Latin-1 encoded, so the reader decodes ISO-8859-1;
// plain ASCII/UTF-8 subsets pass through unchanged.
type SalesCSVParser struct{}

func NewSalesCSVParser() *SalesCSVParser {
	return &SalesCSVParser{}
}

// Parse reads every record of the export into raw transactions. Rows with
// unparseable numeric fields or too few fields are skipped and counted, not
// fatal; a malformed header is fatal.
func (p *SalesCSVParser) Parse(file io.Reader) ([]models.Transaction, int, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		transactions []models.Transaction
		skipped      int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read CSV record: %w", err)
		}

		tx, ok := buildTransaction(record, columns)
		if !ok {
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}

	if skipped > 0 && logger.L != nil {
		logger.L.Warn("Skipped malformed rows while parsing sales data", "skippedRows", skipped)
	}
	return transactions, skipped, nil
}

// mapColumns validates the header against the required schema and returns a
// column-name -> index map. Failing here is deliberate: a missing column
// should surface at load time, not as a silent miss deep in aggregation.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s) %s", ErrInvalidSchema, strings.Join(missing, ", "))
	}
	return columns, nil
}

func buildTransaction(record []string, columns map[string]int) (models.Transaction, bool) {
	field := func(name string) (string, bool) {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	quantityStr, ok := field("Quantity")
	if !ok {
		return models.Transaction{}, false
	}
	quantity, err := strconv.ParseInt(quantityStr, 10, 64)
	if err != nil {
		return models.Transaction{}, false
	}

	unitPriceStr, ok := field("UnitPrice")
	if !ok {
		return models.Transaction{}, false
	}
	unitPrice, err := decimal.NewFromString(unitPriceStr)
	if err != nil {
		return models.Transaction{}, false
	}

	invoiceNo, ok := field("InvoiceNo")
	if !ok {
		return models.Transaction{}, false
	}
	invoiceDate, ok := field("InvoiceDate")
	if !ok {
		return models.Transaction{}, false
	}
	description, _ := field("Description")
	customerID, _ := field("CustomerID")
	country, _ := field("Country")
	stockCode, _ := field("StockCode")

	return models.Transaction{
		InvoiceNo:   invoiceNo,
		StockCode:   stockCode,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		InvoiceDate: invoiceDate,
		CustomerID:  customerID,
		Country:     country,
	}, true
}
