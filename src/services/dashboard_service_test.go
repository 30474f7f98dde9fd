package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/salesdash/src/analytics"
	"github.com/username/salesdash/src/loader"
	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/parsers"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

const salesHeader = "InvoiceNo,StockCode,Description,Quantity,UnitPrice,InvoiceDate,CustomerID,Country\n"

// Four UK customers (segmentable), one France customer (not segmentable),
// one cancellation and one customerless row that cleaning removes.
const testDataset = salesHeader +
	"1,X,MUG,2,5.0,1/1/2024 9:00,C1,UK\n" +
	"1,X,LANTERN,1,30,1/1/2024 9:00,C1,UK\n" +
	"2,X,MUG,4,5.0,2/1/2024 9:00,C2,UK\n" +
	"3,X,CANDLE,1,25,2/1/2024 9:00,C3,UK\n" +
	"4,X,PLATE,10,1,3/1/2024 9:00,C4,UK\n" +
	"C5,X,MUG,-2,5.0,3/1/2024 9:00,C1,UK\n" +
	"6,X,BOWL,1,3,3/1/2024 9:00,,UK\n" +
	"7,X,CARAFE,2,8,1/5/2024 9:00,F1,France\n"

func newTestService(t *testing.T) DashboardService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o644))

	return NewDashboardService(
		loader.NewLoader(parsers.NewSalesCSVParser(), 0),
		path,
		analytics.NewKPIProcessor(),
		analytics.NewProductProcessor(10),
		analytics.NewTrendProcessor(),
		analytics.NewSegmentProcessor(),
		cache.New(cache.NoExpiration, 0),
	)
}

func TestCountriesSortedDistinct(t *testing.T) {
	service := newTestService(t)
	countries, err := service.Countries()
	require.NoError(t, err)
	assert.Equal(t, []string{"France", "UK"}, countries)
}

func TestDatasetSummary(t *testing.T) {
	service := newTestService(t)
	summary, err := service.DatasetSummary()
	require.NoError(t, err)

	assert.Equal(t, 6, summary.RowCount)
	assert.Equal(t, 2, summary.CountryCount)
	assert.Equal(t, 1, summary.Drops.Cancellations)
	assert.Equal(t, 1, summary.Drops.MissingCustomer)
	assert.Equal(t, "2024-01-01", summary.FirstInvoice.Format("2006-01-02"))
	assert.Equal(t, "2024-03-01", summary.LastInvoice.Format("2006-01-02"))
}

func TestFilteredViewUnknownCountry(t *testing.T) {
	service := newTestService(t)
	_, err := service.FilteredView("Atlantis")
	require.ErrorIs(t, err, ErrUnknownCountry)
}

func TestReportComposition(t *testing.T) {
	service := newTestService(t)
	report, err := service.Report("UK")
	require.NoError(t, err)

	assert.Equal(t, "UK", report.Country)

	// KPIs: rows for invoices 1 (two line items), 2, 3, 4.
	assert.Equal(t, 4, report.KPIs.TransactionCount)
	assert.Equal(t, 4, report.KPIs.UniqueCustomerCount)
	assert.True(t, report.KPIs.TotalRevenue.Equal(decimal.NewFromInt(95)),
		"total revenue: got %s", report.KPIs.TotalRevenue)

	// Top products: MUG 30, LANTERN 30 (tie, MUG first-encountered), CANDLE 25, PLATE 10.
	require.Len(t, report.TopProducts, 4)
	assert.Equal(t, "MUG", report.TopProducts[0].Description)
	assert.Equal(t, "LANTERN", report.TopProducts[1].Description)
	assert.Equal(t, "CANDLE", report.TopProducts[2].Description)
	assert.Equal(t, "PLATE", report.TopProducts[3].Description)

	// Monthly trend: 2024-01 40, 2024-02 45, 2024-03 10.
	require.Len(t, report.MonthlyTrend, 3)
	assert.Equal(t, "2024-01", report.MonthlyTrend[0].MonthYear)
	assert.True(t, report.MonthlyTrend[0].TotalRevenue.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "2024-02", report.MonthlyTrend[1].MonthYear)
	assert.True(t, report.MonthlyTrend[1].TotalRevenue.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, "2024-03", report.MonthlyTrend[2].MonthYear)
	assert.True(t, report.MonthlyTrend[2].TotalRevenue.Equal(decimal.NewFromInt(10)))

	// Segments: four distinct customers, one per bin.
	require.Len(t, report.Segments, 4)
	assert.Empty(t, report.SegmentsUnavailable)
}

func TestReportSegmentsDegradeGracefully(t *testing.T) {
	service := newTestService(t)
	report, err := service.Report("France")
	require.NoError(t, err)

	// One distinct customer: segmentation is suppressed, the rest renders.
	assert.Nil(t, report.Segments)
	assert.NotEmpty(t, report.SegmentsUnavailable)
	assert.Equal(t, 1, report.KPIs.UniqueCustomerCount)
	assert.Len(t, report.TopProducts, 1)
}

func TestReportCaching(t *testing.T) {
	service := newTestService(t)

	first, err := service.Report("UK")
	require.NoError(t, err)
	second, err := service.Report("UK")
	require.NoError(t, err)
	assert.Same(t, first, second)

	service.InvalidateReports()
	third, err := service.Report("UK")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
