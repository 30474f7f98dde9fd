package analytics

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/salesdash/src/models"
)

// ErrInsufficientData indicates a view has too few distinct customers for
// quartile segmentation. Callers should suppress the segmentation display
// and keep rendering the other projections.
var ErrInsufficientData = errors.New("insufficient data for customer segmentation")

// Quartile binning is degenerate below four distinct customers.
const minCustomersForSegmentation = 4

// SegmentProcessor assigns quartile-based revenue segments to the customers
// of a filtered view.
type SegmentProcessor struct{}

func NewSegmentProcessor() *SegmentProcessor {
	return &SegmentProcessor{}
}

// Process sums TotalPrice per customer and labels each customer Low, Medium,
// High or Very High by equal-frequency binning: bin boundaries are the
// 25th/50th/75th percentiles of the per-customer revenue distribution,
// computed via linear interpolation on the sorted totals. Values equal to a
// boundary fall into the lower bin. The result lists every customer exactly
// once, ordered by customer identifier.
func (p *SegmentProcessor) Process(view []models.CleanTransaction) ([]models.CustomerSegment, error) {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range view {
		totals[tx.CustomerID] = totals[tx.CustomerID].Add(tx.TotalPrice)
	}

	if len(totals) < minCustomersForSegmentation {
		return nil, ErrInsufficientData
	}

	revenues := make([]decimal.Decimal, 0, len(totals))
	for _, revenue := range totals {
		revenues = append(revenues, revenue)
	}
	sort.Slice(revenues, func(a, b int) bool {
		return revenues[a].LessThan(revenues[b])
	})

	q1 := percentile(revenues, 0.25)
	q2 := percentile(revenues, 0.50)
	q3 := percentile(revenues, 0.75)

	segments := make([]models.CustomerSegment, 0, len(totals))
	for customerID, revenue := range totals {
		segments = append(segments, models.CustomerSegment{
			CustomerID:   customerID,
			TotalRevenue: revenue,
			Segment:      segmentLabel(revenue, q1, q2, q3),
		})
	}
	sort.Slice(segments, func(a, b int) bool {
		return segments[a].CustomerID < segments[b].CustomerID
	})
	return segments, nil
}

func segmentLabel(revenue, q1, q2, q3 decimal.Decimal) string {
	switch {
	case revenue.LessThanOrEqual(q1):
		return models.SegmentLow
	case revenue.LessThanOrEqual(q2):
		return models.SegmentMedium
	case revenue.LessThanOrEqual(q3):
		return models.SegmentHigh
	default:
		return models.SegmentVeryHigh
	}
}
