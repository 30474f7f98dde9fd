// src/handlers/export_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/username/salesdash/src/exporter"
	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/services"
	"github.com/username/salesdash/src/utils"
)

type ExportHandler struct {
	dashboardService services.DashboardService
}

func NewExportHandler(service services.DashboardService) *ExportHandler {
	return &ExportHandler{
		dashboardService: service,
	}
}

// HandleExport streams the current filtered view as a CSV download named
// <country>_filtered_data.csv.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
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

	logger.L.Info("Exporting filtered view", "country", country, "rows", len(view))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.Filename(country)))
	if err := exporter.WriteCSV(w, view); err != nil {
		// Headers are already on the wire; all we can do is log.
		logger.L.Error("Error writing CSV export", "country", country, "error", err)
	}
}
