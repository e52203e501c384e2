package pos

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-pos-core/internal/platform/backup"
	platformobservability "github.com/Apurer/go-pos-core/internal/platform/observability"
)

// Run boots the POS core with observability, loads its starting data, logs the dashboard and
// optionally writes a backup.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	app, err := Boot(ctx, cfg, instruments, time.Now)
	if err != nil {
		logger.Error("POS core failed to boot", slog.String("error", err.Error()))
		return err
	}
	if err := app.LogDashboard(ctx, logger); err != nil {
		return err
	}
	if cfg.ExportPath != "" {
		if err := app.ExportFile(ctx, cfg.ExportPath); err != nil {
			logger.Error("backup export failed", slog.String("path", cfg.ExportPath), slog.String("error", err.Error()))
			return err
		}
	}

	totals, err := instruments.CounterTotals(ctx)
	if err != nil {
		logger.Warn("failed to collect metrics", slog.String("error", err.Error()))
		return nil
	}
	attrs := make([]slog.Attr, 0, len(totals))
	for name, value := range totals {
		attrs = append(attrs, slog.Float64(name, value))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "session metrics", attrs...)
	return nil
}

// Boot builds the App and loads its starting data: a backup file when configured, otherwise the
// sample catalogue when seeding is enabled.
func Boot(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, now func() time.Time) (*App, error) {
	app := NewApp(cfg, instruments, now)
	switch {
	case cfg.ImportPath != "":
		if err := app.ImportFile(ctx, cfg.ImportPath); err != nil {
			return nil, err
		}
	case cfg.SeedSampleData:
		if err := app.SeedSampleData(ctx); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// LogDashboard writes the current dashboard figures as one structured record.
func (a *App) LogDashboard(ctx context.Context, logger *slog.Logger) error {
	snap, err := a.Dashboard.Snapshot(ctx)
	if err != nil {
		return err
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "dashboard",
		slog.Int("customers", snap.TotalCustomers),
		slog.Int("items", snap.TotalItems),
		slog.Int("orders", snap.TotalOrders),
		slog.String("revenue", snap.TotalRevenue.StringFixed(2)),
		slog.String("average_order", snap.AverageOrderValue.StringFixed(2)),
		slog.Int("today_orders", snap.TodayOrders),
		slog.String("today_revenue", snap.TodayRevenue.StringFixed(2)),
		slog.Int("low_stock", snap.LowStockCount),
		slog.Int("out_of_stock", snap.OutOfStockCount),
	)
	return nil
}

// ExportFile writes a backup document to path, as YAML when the extension says so.
func (a *App) ExportFile(ctx context.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = a.Backup.Export(ctx, f, backup.FormatFromPath(path))
	return err
}

// ImportFile replaces every store with the backup document at path.
func (a *App) ImportFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()
	_, err = a.Backup.Import(ctx, f, backup.FormatFromPath(path))
	return err
}
