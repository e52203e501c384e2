package pos

import (
	"log/slog"
	"time"

	catalogmemory "github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-pos-core/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/go-pos-core/internal/domains/customers/adapters/memory"
	customerobs "github.com/Apurer/go-pos-core/internal/domains/customers/adapters/observability"
	customerapp "github.com/Apurer/go-pos-core/internal/domains/customers/application"
	customerports "github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	dashboard "github.com/Apurer/go-pos-core/internal/domains/dashboard/application"
	ordermemory "github.com/Apurer/go-pos-core/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-pos-core/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/go-pos-core/internal/domains/orders/application"
	orderports "github.com/Apurer/go-pos-core/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-core/internal/platform/backup"
	platformobservability "github.com/Apurer/go-pos-core/internal/platform/observability"
)

// App holds one session's stores and the services the presentation layer calls.
type App struct {
	Customers customerports.Service
	Catalog   catalogports.Service
	Orders    orderports.Service
	Dashboard *dashboard.StatisticsView
	Backup    *backup.Service
}

// NewApp builds fresh in-memory stores and wires the decorated services around them.
// instruments may be nil, in which case decorators fall back to no-op telemetry.
func NewApp(cfg Config, instruments *platformobservability.Instruments, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}

	customerRepo := customermemory.NewRepository().WithClock(now)
	itemRepo := catalogmemory.NewRepository().WithClock(now)
	orderRepo := ordermemory.NewRepository()

	engine := orderapp.NewEngine(orderRepo, customerRepo, itemRepo,
		orderapp.WithWalkIn(cfg.AllowWalkIn),
		orderapp.WithClock(now),
		orderapp.WithLocation(cfg.Location),
	)

	customers := customerobs.New(
		customerapp.NewService(customerRepo, engine),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	catalog := catalogobs.New(
		catalogapp.NewService(itemRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	orders := orderobs.New(
		engine,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	return &App{
		Customers: customers,
		Catalog:   catalog,
		Orders:    orders,
		Dashboard: dashboard.NewStatisticsView(customers, catalog, orders, cfg.LowStockThreshold),
		Backup:    backup.NewService(customers, catalog, orders, backup.WithLogger(logger), backup.WithClock(now)),
	}
}
