// src/handlers/dashboard_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/salesdash/src/loader"
	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/services"
	"github.com/username/salesdash/src/utils"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: service,
	}
}

func (h *DashboardHandler) HandleGetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.dashboardService.Countries()
	if err != nil {
		sendDatasetError(w, err)
		return
	}
	if countries == nil {
		countries = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(countries); err != nil {
		logger.L.Error("Error encoding JSON response for countries", "error", err)
	}
}

func (h *DashboardHandler) HandleGetDatasetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.DatasetSummary()
	if err != nil {
		sendDatasetError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding JSON response for dataset summary", "error", err)
	}
}

func (h *DashboardHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	country, ok := requireCountryParam(w, r)
	if !ok {
		return
	}
	logger.L.Debug("Handling GetReport request with ETag support", "country", country)

	report, err := h.dashboardService.Report(country)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCountry) {
			utils.SendJSONError(w, fmt.Sprintf("country %q not found in dataset", country), http.StatusNotFound)
			return
		}
		sendDatasetError(w, err)
		return
	}

	currentETag, etagErr := utils.GenerateETag(report)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for report", "country", country, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Info("ETag match for report", "country", country, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.L.Error("Error encoding JSON response for report", "country", country, "error", err)
	}
}

func (h *DashboardHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	country, ok := requireCountryParam(w, r)
	if !ok {
		return
	}

	view, err := h.dashboardService.FilteredView(country)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCountry) {
			utils.SendJSONError(w, fmt.Sprintf("country %q not found in dataset", country), http.StatusNotFound)
			return
		}
		sendDatasetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		logger.L.Error("Error encoding JSON response for transactions", "country", country, "error", err)
	}
}

// requireCountryParam extracts the mandatory country query parameter.
func requireCountryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		utils.SendJSONError(w, "missing required query parameter 'country'", http.StatusBadRequest)
		return "", false
	}
	return country, true
}

// sendDatasetError maps dataset-level failures onto HTTP status codes. A
// source that cannot be read or that cleans down to zero rows is fatal to the
// dashboard, not a per-request condition.
func sendDatasetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loader.ErrSourceUnavailable):
		logger.L.Error("Sales data source unavailable", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("sales data source unavailable: %v", err), http.StatusServiceUnavailable)
	case errors.Is(err, loader.ErrEmptySource):
		logger.L.Error("Sales data source empty after cleaning", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("sales data source empty after cleaning: %v", err), http.StatusServiceUnavailable)
	default:
		logger.L.Error("Internal error serving dashboard data", "error", err)
		utils.SendJSONError(w, "An internal error occurred while serving dashboard data.", http.StatusInternalServerError)
	}
}
