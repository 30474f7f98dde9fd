package analytics

import (
	"sort"

	"github.com/username/salesdash/src/models"
)

// ProductProcessor ranks products by summed revenue for a filtered view.
type ProductProcessor struct {
	limit int
}

func NewProductProcessor(limit int) *ProductProcessor {
	return &ProductProcessor{limit: limit}
}

// Process groups rows by product description, sums TotalPrice per product and
// returns the top entries sorted descending by revenue. The sort is stable,
// so revenue ties keep first-encountered order. Fewer distinct products than
// the limit is not an error; the ranking is simply shorter.
func (p *ProductProcessor) Process(view []models.CleanTransaction) []models.ProductRevenue {
	index := make(map[string]int)
	var ranking []models.ProductRevenue

	for _, tx := range view {
		i, ok := index[tx.Description]
		if !ok {
			i = len(ranking)
			index[tx.Description] = i
			ranking = append(ranking, models.ProductRevenue{Description: tx.Description})
		}
		ranking[i].TotalRevenue = ranking[i].TotalRevenue.Add(tx.TotalPrice)
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].TotalRevenue.GreaterThan(ranking[b].TotalRevenue)
	})

	if p.limit > 0 && len(ranking) > p.limit {
		ranking = ranking[:p.limit]
	}
	return ranking
}
