package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port                string
	LogLevel            string
	SalesDataPath       string
	CORSAllowedOrigin   string
	TopProductsLimit    int
	MaxDatasetSizeBytes int64
	ReportCacheExpiry   time.Duration
	ReportCacheCleanup  time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	maxDatasetSizeBytesStr := getEnv("MAX_DATASET_SIZE_BYTES", "104857600")
	maxDatasetSizeBytes, err := strconv.ParseInt(maxDatasetSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_DATASET_SIZE_BYTES format '%s'. Using default 100MB. Error: %v", maxDatasetSizeBytesStr, err)
		maxDatasetSizeBytes = 100 * 1024 * 1024
	}

	topProductsLimit := getEnvAsInt("TOP_PRODUCTS_LIMIT", 10)
	if topProductsLimit <= 0 {
		log.Printf("WARNING: TOP_PRODUCTS_LIMIT must be positive, got %d. Using default 10.", topProductsLimit)
		topProductsLimit = 10
	}

	Cfg = &AppConfig{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		SalesDataPath:       getEnv("SALES_DATA_PATH", "data/data.csv"),
		CORSAllowedOrigin:   getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		TopProductsLimit:    topProductsLimit,
		MaxDatasetSizeBytes: maxDatasetSizeBytes,
		ReportCacheExpiry:   getEnvAsDuration("REPORT_CACHE_EXPIRATION", 15*time.Minute),
		ReportCacheCleanup:  getEnvAsDuration("REPORT_CACHE_CLEANUP_INTERVAL", 30*time.Minute),
		ReadTimeout:         getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:        getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, SalesDataPath=%s, TopProductsLimit=%d",
		Cfg.Port, Cfg.LogLevel, Cfg.SalesDataPath, Cfg.TopProductsLimit)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Integer value for %s not set or empty, using default: %d", key, fallback)
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		log.Printf("Duration value for %s not set or empty, using default: %s", key, fallback.String())
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
