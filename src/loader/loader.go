// src/loader/loader.go
package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/models"
	"github.com/username/salesdash/src/parsers"
	"github.com/username/salesdash/src/security/validation"
)

var (
	// ErrSourceUnavailable indicates the sales data file could not be opened or read.
	ErrSourceUnavailable = errors.New("sales data source unavailable")
	// ErrEmptySource indicates cleaning removed every row of the source.
	ErrEmptySource = errors.New("sales data source empty after cleaning")
)

// Invoice identifiers starting with this marker are cancellations/returns
// and are excluded from revenue analysis.
const cancellationMarker = "C"

// Layouts tried when parsing invoice timestamps, most common first. Rows
// matching none of them are dropped rather than defaulted, so a corrupt
// timestamp can never leak into the monthly rollups.
var invoiceDateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// Dataset is the cleaned, immutable result of loading a sales data source.
// It is computed once per source and must never be mutated afterwards;
// filtering produces views, not diverging copies.
type Dataset struct {
	Transactions []models.CleanTransaction
	Drops        models.DropStats
}

// Loader reads and cleans the sales data source. Results are memoized per
// source path for the lifetime of the process: the source is static for a
// session, so there is no invalidation trigger.
type Loader struct {
	parser       *parsers.SalesCSVParser
	maxSizeBytes int64
	datasets     *cache.Cache
}

func NewLoader(parser *parsers.SalesCSVParser, maxSizeBytes int64) *Loader {
	return &Loader{
		parser:       parser,
		maxSizeBytes: maxSizeBytes,
		datasets:     cache.New(cache.NoExpiration, 0),
	}
}

// Load returns the cleaned dataset for the given source path. Repeated calls
// with the same path return the identical cached dataset without re-reading
// the file.
func (l *Loader) Load(path string) (*Dataset, error) {
	if cached, found := l.datasets.Get(path); found {
		logger.L.Debug("Dataset cache hit", "path", path)
		return cached.(*Dataset), nil
	}

	startTime := time.Now()
	logger.L.Info("Loading sales data source", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if l.maxSizeBytes > 0 && info.Size() > l.maxSizeBytes {
		return nil, fmt.Errorf("%w: file size %d exceeds limit %d", ErrSourceUnavailable, info.Size(), l.maxSizeBytes)
	}

	if _, err := validation.ValidateDatasetContent(file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	rawTransactions, skipped, err := l.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	dataset := clean(rawTransactions)
	dataset.Drops.MalformedRows = skipped
	if len(dataset.Transactions) == 0 {
		return nil, fmt.Errorf("%w: %d raw rows, all excluded", ErrEmptySource, len(rawTransactions))
	}

	l.datasets.Set(path, dataset, cache.NoExpiration)
	logger.L.Info("Sales data source loaded",
		"path", path,
		"cleanRows", len(dataset.Transactions),
		"droppedRows", dataset.Drops.Total()+skipped,
		"missingCustomer", dataset.Drops.MissingCustomer,
		"cancellations", dataset.Drops.Cancellations,
		"badDates", dataset.Drops.BadDates,
		"malformedRows", skipped,
		"duration", time.Since(startTime))
	return dataset, nil
}

// clean applies the cleaning pipeline in order: drop rows without a customer,
// drop cancellation invoices, derive the total price, parse the invoice
// timestamp (dropping unparseable rows), then derive the month period.
func clean(raw []models.Transaction) *Dataset {
	dataset := &Dataset{}
	for _, tx := range raw {
		if tx.CustomerID == "" {
			dataset.Drops.MissingCustomer++
			continue
		}
		if strings.HasPrefix(tx.InvoiceNo, cancellationMarker) {
			dataset.Drops.Cancellations++
			continue
		}

		totalPrice := decimal.NewFromInt(tx.Quantity).Mul(tx.UnitPrice)

		invoiceDate, ok := parseInvoiceDate(tx.InvoiceDate)
		if !ok {
			dataset.Drops.BadDates++
			continue
		}

		dataset.Transactions = append(dataset.Transactions, models.CleanTransaction{
			InvoiceNo:   tx.InvoiceNo,
			StockCode:   tx.StockCode,
			Description: tx.Description,
			Quantity:    tx.Quantity,
			UnitPrice:   tx.UnitPrice,
			InvoiceDate: invoiceDate,
			CustomerID:  tx.CustomerID,
			Country:     tx.Country,
			TotalPrice:  totalPrice,
			MonthYear:   invoiceDate.Format("2006-01"),
		})
	}
	return dataset
}

func parseInvoiceDate(raw string) (time.Time, bool) {
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
