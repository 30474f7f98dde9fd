package analytics

import (
	"sort"

	"github.com/username/salesdash/src/models"
)

// TrendProcessor computes the monthly revenue rollup for a filtered view.
type TrendProcessor struct{}

func NewTrendProcessor() *TrendProcessor {
	return &TrendProcessor{}
}

// Process groups rows by month period and sums TotalPrice per month, sorted
// ascending by the "YYYY-MM" period string. Lexicographic order on that
// format is chronological order.
func (p *TrendProcessor) Process(view []models.CleanTransaction) []models.MonthlyRevenue {
	index := make(map[string]int)
	var trend []models.MonthlyRevenue

	for _, tx := range view {
		i, ok := index[tx.MonthYear]
		if !ok {
			i = len(trend)
			index[tx.MonthYear] = i
			trend = append(trend, models.MonthlyRevenue{MonthYear: tx.MonthYear})
		}
		trend[i].TotalRevenue = trend[i].TotalRevenue.Add(tx.TotalPrice)
	}

	sort.Slice(trend, func(a, b int) bool {
		return trend[a].MonthYear < trend[b].MonthYear
	})
	return trend
}
