package main

import (
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/salesdash/src/analytics"
	"github.com/username/salesdash/src/config"
	"github.com/username/salesdash/src/handlers"
	"github.com/username/salesdash/src/loader"
	"github.com/username/salesdash/src/logger"
	"github.com/username/salesdash/src/parsers"
	"github.com/username/salesdash/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Sales dashboard backend server starting...")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.ReportCacheExpiry, config.Cfg.ReportCacheCleanup)
	logger.L.Info("Report cache initialized.")

	logger.L.Info("Initializing services and handlers...")
	csvParser := parsers.NewSalesCSVParser()
	dataLoader := loader.NewLoader(csvParser, config.Cfg.MaxDatasetSizeBytes)

	dashboardService := services.NewDashboardService(
		dataLoader,
		config.Cfg.SalesDataPath,
		analytics.NewKPIProcessor(),
		analytics.NewProductProcessor(config.Cfg.TopProductsLimit),
		analytics.NewTrendProcessor(),
		analytics.NewSegmentProcessor(),
		reportCache,
	)

	// A source that cannot be loaded is fatal to the session: surface it at
	// startup instead of failing every request later.
	logger.L.Info("Warming dataset...", "path", config.Cfg.SalesDataPath)
	if _, err := dataLoader.Load(config.Cfg.SalesDataPath); err != nil {
		if errors.Is(err, loader.ErrEmptySource) {
			logger.L.Error("Sales data source contains no usable rows after cleaning", "error", err)
		} else {
			logger.L.Error("Failed to load sales data source", "error", err)
		}
		os.Exit(1)
	}
	summary, err := dashboardService.DatasetSummary()
	if err != nil {
		logger.L.Error("Failed to summarize dataset", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Dataset ready",
		"rows", summary.RowCount,
		"countries", summary.CountryCount,
		"droppedRows", summary.Drops.Total())

	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(dashboardService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/countries", dashboardHandler.HandleGetCountries)
	apiRouter.HandleFunc("GET /api/dataset/summary", dashboardHandler.HandleGetDatasetSummary)
	apiRouter.HandleFunc("GET /api/report", dashboardHandler.HandleGetReport)
	apiRouter.HandleFunc("GET /api/transactions", dashboardHandler.HandleGetTransactions)
	apiRouter.HandleFunc("GET /api/export", exportHandler.HandleExport)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Sales dashboard backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := handlers.EnableCORS(config.Cfg.CORSAllowedOrigin)(
		handlers.RateLimitMiddleware(limiter)(
			handlers.RequestLogMiddleware(rootMux)))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  config.Cfg.ReadTimeout,
		WriteTimeout: config.Cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
