package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/username/salesdash/src/models"
)

// KPIProcessor computes the headline metrics for a filtered view.
type KPIProcessor struct{}

func NewKPIProcessor() *KPIProcessor {
	return &KPIProcessor{}
}

// Process sums revenue over every row (returns that survived cleaning stay
// negative, no floor at zero) and counts distinct invoices and customers.
// One invoice may span multiple line-item rows, so the transaction count is
// the distinct invoice count, not the row count.
func (p *KPIProcessor) Process(view []models.CleanTransaction) models.KPIReport {
	totalRevenue := decimal.Zero
	invoices := make(map[string]struct{})
	customers := make(map[string]struct{})

	for _, tx := range view {
		totalRevenue = totalRevenue.Add(tx.TotalPrice)
		invoices[tx.InvoiceNo] = struct{}{}
		customers[tx.CustomerID] = struct{}{}
	}

	return models.KPIReport{
		TotalRevenue:        totalRevenue,
		TransactionCount:    len(invoices),
		UniqueCustomerCount: len(customers),
	}
}
