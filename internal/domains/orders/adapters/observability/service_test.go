package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	catalogmemory "github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	customermemory "github.com/Apurer/go-pos-core/internal/domains/customers/adapters/memory"
	customerdomain "github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	ordermemory "github.com/Apurer/go-pos-core/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-pos-core/internal/domains/orders/application"
	"github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func TestService_RecordsPlacedAndRejectedOrders(t *testing.T) {
	ctx := context.Background()
	customers := customermemory.NewRepository()
	items := catalogmemory.NewRepository()

	customer, err := customerdomain.NewCustomer("Ann Lee", "555-0101", "")
	require.NoError(t, err)
	customer, err = customers.Save(ctx, customer)
	require.NoError(t, err)
	item, err := catalogdomain.NewItem("CAKE1", "Cake", decimal.RequireFromString("20.00"), 3)
	require.NoError(t, err)
	item, err = items.Save(ctx, item)
	require.NoError(t, err)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	var logs bytes.Buffer

	svc := New(
		application.NewEngine(ordermemory.NewRepository(), customers, items),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		WithTracer(provider.Tracer("test")),
		WithMeter(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")),
	)

	_, err = svc.PlaceOrder(ctx, types.ForCustomer(customer.ID, types.CartLine{ItemID: item.ID, Quantity: 2}))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, types.ForCustomer(customer.ID, types.CartLine{ItemID: item.ID, Quantity: 2}))
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "OrderService.PlaceOrder", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Contains(t, logs.String(), `"order.total":"44.00"`)
	require.Contains(t, logs.String(), "order rejected")
	require.Contains(t, logs.String(), `"problem.type":"/problems/insufficient-stock"`)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	totals := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			totals[m.Name] = true
		}
	}
	require.True(t, totals["orders.service.orders_placed"])
	require.True(t, totals["orders.service.orders_rejected"])
	require.True(t, totals["orders.service.revenue"])
}
