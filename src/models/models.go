package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single raw line item from the sales CSV file.
type Transaction struct {
	InvoiceNo   string          `json:"invoice_no"`
	StockCode   string          `json:"stock_code"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"` // negative for returns
	UnitPrice   decimal.Decimal `json:"unit_price"`
	InvoiceDate string          `json:"invoice_date"` // raw timestamp, parsed during cleaning
	CustomerID  string          `json:"customer_id"`  // may be empty in raw data
	Country     string          `json:"country"`
}

// CleanTransaction is a Transaction that survived cleaning, plus derived fields.
type CleanTransaction struct {
	InvoiceNo   string          `json:"invoice_no"`
	StockCode   string          `json:"stock_code"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	InvoiceDate time.Time       `json:"invoice_date"`
	CustomerID  string          `json:"customer_id"`
	Country     string          `json:"country"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	MonthYear   string          `json:"month_year"` // "YYYY-MM", sortable
}

// DropStats counts rows excluded during cleaning, per reason.
type DropStats struct {
	MalformedRows   int `json:"malformed_rows"`
	MissingCustomer int `json:"missing_customer"`
	Cancellations   int `json:"cancellations"`
	BadDates        int `json:"bad_dates"`
}

// Total returns the number of rows excluded across all reasons.
func (d DropStats) Total() int {
	return d.MalformedRows + d.MissingCustomer + d.Cancellations + d.BadDates
}

// KPIReport holds the headline metrics for a filtered view.
type KPIReport struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TransactionCount    int             `json:"transaction_count"` // distinct invoices, not rows
	UniqueCustomerCount int             `json:"unique_customer_count"`
}

// ProductRevenue is one entry of the top-products ranking.
type ProductRevenue struct {
	Description  string          `json:"description"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// MonthlyRevenue is one point of the monthly sales trend.
type MonthlyRevenue struct {
	MonthYear    string          `json:"month_year"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CustomerSegment labels one customer by quartile rank of their summed revenue.
type CustomerSegment struct {
	CustomerID   string          `json:"customer_id"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Segment      string          `json:"segment"`
}

// Segment labels, in ascending revenue order.
const (
	SegmentLow      = "Low"
	SegmentMedium   = "Medium"
	SegmentHigh     = "High"
	SegmentVeryHigh = "Very High"
)

// DatasetSummary describes the cleaned dataset as a whole, including the
// rows that cleaning excluded.
type DatasetSummary struct {
	RowCount     int       `json:"row_count"`
	CountryCount int       `json:"country_count"`
	FirstInvoice time.Time `json:"first_invoice"`
	LastInvoice  time.Time `json:"last_invoice"`
	Drops        DropStats `json:"drops"`
}
