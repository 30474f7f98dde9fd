package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/salesdash/src/models"
)

func TestProductProcessorRanking(t *testing.T) {
	view := []models.CleanTransaction{
		cleanRow("1", "MUG", 2, "5", "C1", "UK", "2024-01"),      // MUG: 10
		cleanRow("2", "LANTERN", 1, "30", "C2", "UK", "2024-01"), // LANTERN: 30
		cleanRow("3", "MUG", 2, "5", "C3", "UK", "2024-01"),      // MUG: 20 total
		cleanRow("4", "CANDLE", 5, "5", "C4", "UK", "2024-01"),   // CANDLE: 25
	}

	ranking := NewProductProcessor(10).Process(view)
	require.Len(t, ranking, 3)

	assert.Equal(t, "LANTERN", ranking[0].Description)
	assert.Equal(t, "CANDLE", ranking[1].Description)
	assert.Equal(t, "MUG", ranking[2].Description)
	assert.Equal(t, "30", ranking[0].TotalRevenue.String())
	assert.Equal(t, "25", ranking[1].TotalRevenue.String())
	assert.Equal(t, "20", ranking[2].TotalRevenue.String())
}

func TestProductProcessorNonIncreasingOrder(t *testing.T) {
	view := []models.CleanTransaction{
		cleanRow("1", "A", 1, "3", "C1", "UK", "2024-01"),
		cleanRow("2", "B", 1, "9", "C1", "UK", "2024-01"),
		cleanRow("3", "C", 1, "1", "C1", "UK", "2024-01"),
		cleanRow("4", "D", 1, "9", "C1", "UK", "2024-01"),
	}
	ranking := NewProductProcessor(10).Process(view)
	for i := 1; i < len(ranking); i++ {
		assert.True(t, ranking[i-1].TotalRevenue.GreaterThanOrEqual(ranking[i].TotalRevenue),
			"ranking not non-increasing at index %d", i)
	}
}

func TestProductProcessorTiesKeepFirstEncounteredOrder(t *testing.T) {
	view := []models.CleanTransaction{
		cleanRow("1", "SECOND-SEEN-LAST", 1, "5", "C1", "UK", "2024-01"),
		cleanRow("2", "TIED-TWIN", 1, "5", "C1", "UK", "2024-01"),
	}
	ranking := NewProductProcessor(10).Process(view)
	require.Len(t, ranking, 2)
	assert.Equal(t, "SECOND-SEEN-LAST", ranking[0].Description)
	assert.Equal(t, "TIED-TWIN", ranking[1].Description)
}

func TestProductProcessorTruncation(t *testing.T) {
	view := []models.CleanTransaction{
		cleanRow("1", "A", 1, "1", "C1", "UK", "2024-01"),
		cleanRow("2", "B", 1, "2", "C1", "UK", "2024-01"),
		cleanRow("3", "C", 1, "3", "C1", "UK", "2024-01"),
	}

	assert.Len(t, NewProductProcessor(2).Process(view), 2)
	// Fewer distinct products than the limit is not an error.
	assert.Len(t, NewProductProcessor(10).Process(view), 3)
	assert.Empty(t, NewProductProcessor(10).Process(nil))
}
