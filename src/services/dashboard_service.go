// src/services/dashboard_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/salesdash/src/analytics"
	"github.com/username/salesdash/src/loader"
	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/models"
)

const (
	// Derived whole-dataset aggregates
	ckCountries      = "agg_countries"
	ckDatasetSummary = "agg_dataset_summary"

	// Per-country composite report
	ckCountryReport = "report_country_%s"
)

type dashboardServiceImpl struct {
	loader           *loader.Loader
	dataPath         string
	kpiProcessor     *analytics.KPIProcessor
	productProcessor *analytics.ProductProcessor
	trendProcessor   *analytics.TrendProcessor
	segmentProcessor *analytics.SegmentProcessor
	reportCache      *cache.Cache
}

func NewDashboardService(
	dataLoader *loader.Loader,
	dataPath string,
	kpiProcessor *analytics.KPIProcessor,
	productProcessor *analytics.ProductProcessor,
	trendProcessor *analytics.TrendProcessor,
	segmentProcessor *analytics.SegmentProcessor,
	reportCache *cache.Cache,
) DashboardService {
	return &dashboardServiceImpl{
		loader:           dataLoader,
		dataPath:         dataPath,
		kpiProcessor:     kpiProcessor,
		productProcessor: productProcessor,
		trendProcessor:   trendProcessor,
		segmentProcessor: segmentProcessor,
		reportCache:      reportCache,
	}
}

// dataset returns the memoized clean dataset. The loader parses the source at
// most once per process; every service method works off that immutable set.
func (s *dashboardServiceImpl) dataset() (*loader.Dataset, error) {
	return s.loader.Load(s.dataPath)
}

// Countries returns the sorted distinct set of country values present in the
// cleaned dataset, which populates the dashboard's selection control.
func (s *dashboardServiceImpl) Countries() ([]string, error) {
	if cached, found := s.reportCache.Get(ckCountries); found {
		return cached.([]string), nil
	}

	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var countries []string
	for _, tx := range dataset.Transactions {
		if _, ok := seen[tx.Country]; !ok {
			seen[tx.Country] = struct{}{}
			countries = append(countries, tx.Country)
		}
	}
	sort.Strings(countries)

	s.reportCache.Set(ckCountries, countries, cache.NoExpiration)
	return countries, nil
}

// DatasetSummary reports row counts, the invoice date span and the per-reason
// drop counts of the cleaning pipeline.
func (s *dashboardServiceImpl) DatasetSummary() (*models.DatasetSummary, error) {
	if cached, found := s.reportCache.Get(ckDatasetSummary); found {
		return cached.(*models.DatasetSummary), nil
	}

	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}
	countries, err := s.Countries()
	if err != nil {
		return nil, err
	}

	var first, last time.Time
	for _, tx := range dataset.Transactions {
		if first.IsZero() || tx.InvoiceDate.Before(first) {
			first = tx.InvoiceDate
		}
		if tx.InvoiceDate.After(last) {
			last = tx.InvoiceDate
		}
	}

	summary := &models.DatasetSummary{
		RowCount:     len(dataset.Transactions),
		CountryCount: len(countries),
		FirstInvoice: first,
		LastInvoice:  last,
		Drops:        dataset.Drops,
	}
	s.reportCache.Set(ckDatasetSummary, summary, cache.NoExpiration)
	return summary, nil
}

// FilteredView returns the subset of clean rows for the selected country.
// The returned slice is a read-only view; callers must not mutate it.
func (s *dashboardServiceImpl) FilteredView(country string) ([]models.CleanTransaction, error) {
	dataset, err := s.dataset()
	if err != nil {
		return nil, err
	}

	var view []models.CleanTransaction
	for _, tx := range dataset.Transactions {
		if tx.Country == country {
			view = append(view, tx)
		}
	}
	if len(view) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return view, nil
}

// Report computes (or serves from cache) the full dashboard report for one
// country: KPIs, top products, monthly trend and customer segments. An
// insufficient-data segmentation degrades only the segments panel.
func (s *dashboardServiceImpl) Report(country string) (*DashboardReport, error) {
	cacheKey := fmt.Sprintf(ckCountryReport, country)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for country report", "country", country)
		return cached.(*DashboardReport), nil
	}
	logger.L.Info("Cache miss for country report, computing...", "country", country)

	view, err := s.FilteredView(country)
	if err != nil {
		return nil, err
	}

	report := &DashboardReport{
		Country:      country,
		KPIs:         s.kpiProcessor.Process(view),
		TopProducts:  s.productProcessor.Process(view),
		MonthlyTrend: s.trendProcessor.Process(view),
	}

	segments, err := s.segmentProcessor.Process(view)
	if err != nil {
		if !errors.Is(err, analytics.ErrInsufficientData) {
			return nil, err
		}
		logger.L.Warn("Customer segmentation unavailable for country", "country", country, "error", err)
		report.SegmentsUnavailable = err.Error()
	} else {
		report.Segments = segments
	}

	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

// InvalidateReports clears every cached report and aggregate, forcing a full
// recomputation on the next request.
func (s *dashboardServiceImpl) InvalidateReports() {
	s.reportCache.Flush()
	logger.L.Info("Invalidated all cached dashboard reports")
}
