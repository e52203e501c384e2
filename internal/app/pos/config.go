package pos

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	dashboard "github.com/Apurer/go-pos-core/internal/domains/dashboard/application"
)

// Config carries environment-driven settings for the POS process.
type Config struct {
	ServiceName       string
	Environment       string
	LogLevel          slog.Level
	SeedSampleData    bool
	AllowWalkIn       bool
	LowStockThreshold int
	Location          *time.Location
	ImportPath        string
	ExportPath        string
	OTLPEndpoint      string
	OTLPInsecure      bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		ServiceName:       envDefault("POS_SERVICE_NAME", "pos-core"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		SeedSampleData:    isTruthy(os.Getenv("POS_SEED_SAMPLE_DATA")),
		AllowWalkIn:       isTruthy(os.Getenv("POS_ALLOW_WALK_IN")),
		LowStockThreshold: dashboard.DefaultLowStockThreshold,
		Location:          time.Local,
		ImportPath:        strings.TrimSpace(os.Getenv("POS_IMPORT_PATH")),
		ExportPath:        strings.TrimSpace(os.Getenv("POS_EXPORT_PATH")),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
	}
	if raw := strings.TrimSpace(os.Getenv("POS_LOW_STOCK_THRESHOLD")); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold <= 0 {
			return Config{}, fmt.Errorf("POS_LOW_STOCK_THRESHOLD must be a positive integer")
		}
		cfg.LowStockThreshold = threshold
	}
	if name := strings.TrimSpace(os.Getenv("POS_TIMEZONE")); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("POS_TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
