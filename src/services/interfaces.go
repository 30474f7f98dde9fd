package services

import (
	"errors"

	"github.com/username/salesdash/src/models"
)

// ErrUnknownCountry indicates the requested country does not occur in the
// cleaned dataset.
var ErrUnknownCountry = errors.New("country not present in dataset")

// DashboardReport bundles every projection the dashboard renders for one
// selected country. Segments is nil when the view has too few distinct
// customers for quartile binning; SegmentsUnavailable carries the reason so
// the frontend can disable only that panel.
type DashboardReport struct {
	Country             string                   `json:"country"`
	KPIs                models.KPIReport         `json:"kpis"`
	TopProducts         []models.ProductRevenue  `json:"top_products"`
	MonthlyTrend        []models.MonthlyRevenue  `json:"monthly_trend"`
	Segments            []models.CustomerSegment `json:"segments"`
	SegmentsUnavailable string                   `json:"segments_unavailable,omitempty"`
}

// DashboardService defines the interface for the core dashboard logic.
type DashboardService interface {
	Countries() ([]string, error)
	DatasetSummary() (*models.DatasetSummary, error)
	Report(country string) (*DashboardReport, error)
	FilteredView(country string) ([]models.CleanTransaction, error)
	InvalidateReports()
}
