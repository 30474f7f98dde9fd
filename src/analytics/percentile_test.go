package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimals(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func TestPercentileLinearInterpolation(t *testing.T) {
	tests := []struct {
		name   string
		sorted []decimal.Decimal
		p      float64
		want   string
	}{
		{"single value any percentile", decimals("42"), 0.75, "42"},
		{"median of two interpolates", decimals("10", "20"), 0.50, "15"},
		{"exact rank no interpolation", decimals("1", "2", "3", "4", "5"), 0.50, "3"},
		{"q1 of four values", decimals("10", "20", "30", "40"), 0.25, "17.5"},
		{"q3 of four values", decimals("10", "20", "30", "40"), 0.75, "32.5"},
		{"zeroth percentile is minimum", decimals("5", "9", "11"), 0, "5"},
		{"hundredth percentile is maximum", decimals("5", "9", "11"), 1, "11"},
		{"ties collapse interpolation", decimals("10", "10", "10", "40"), 0.50, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.sorted, tt.p)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"percentile %.2f: got %s want %s", tt.p, got, tt.want)
		})
	}
}
