package observability

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-core/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-pos-core/internal/domains/orders/adapters/observability/service"

// Service decorates the order engine with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the order engine.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("order.lines", len(input.Lines)),
		attribute.Bool("order.walk_in", input.WalkIn),
	}
	if input.CustomerID != nil {
		attrs = append(attrs, attribute.Int64("customer.id", *input.CustomerID))
	}
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(attrs...))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int("order.lines", len(input.Lines)))
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "order rejected", slog.Int("order.lines", len(input.Lines)))
	}
	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("order.total", order.Total.StringFixed(2)),
	)
	s.metrics.recordPlaced(ctx, order)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", order.ID),
		slog.Int64("customer.id", order.CustomerID),
		slog.String("order.total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return order, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListAll")
	defer span.End()

	list, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(list)))
	return list, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	list, err := s.inner.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("order.count", len(list)))
	return list, nil
}

func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByDateRange", trace.WithAttributes(
		attribute.String("range.start", start.Format(time.RFC3339)),
		attribute.String("range.end", end.Format(time.RFC3339)),
	))
	defer span.End()

	list, err := s.inner.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by date")
	}
	span.SetAttributes(attribute.Int("order.count", len(list)))
	return list, nil
}

func (s *Service) Today(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Today")
	defer span.End()

	list, err := s.inner.Today(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list today's orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(list)))
	return list, nil
}

func (s *Service) Statistics(ctx context.Context) (types.Statistics, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Statistics")
	defer span.End()

	stats, err := s.inner.Statistics(ctx)
	if err != nil {
		return types.Statistics{}, s.handleError(ctx, span, err, "failed to compute order statistics")
	}
	span.SetAttributes(
		attribute.Int("order.count", stats.Count),
		attribute.String("order.revenue", stats.TotalRevenue.StringFixed(2)),
	)
	return stats, nil
}

func (s *Service) HasOrdersForCustomer(ctx context.Context, customerID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.HasOrdersForCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	ok, err := s.inner.HasOrdersForCustomer(ctx, customerID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to check customer orders", slog.Int64("customer.id", customerID))
	}
	return ok, nil
}

func (s *Service) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", id))
	if err := s.inner.Delete(ctx, id, confirmer); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", id))
	}
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", id))
	return nil
}

func (s *Service) ReplaceAll(ctx context.Context, orders []*domain.Order) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.ReplaceAll", trace.WithAttributes(attribute.Int("order.count", len(orders))))
	defer span.End()

	s.logInfo(ctx, "replacing order history", slog.Int("order.count", len(orders)))
	if err := s.inner.ReplaceAll(ctx, orders); err != nil {
		return s.handleError(ctx, span, err, "failed to replace order history")
	}
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	problem := apperrors.Describe(err)
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.type", problem.Type))
	}
	attrs = append(attrs, slog.String("problem.type", problem.Type))
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	placed   metric.Int64Counter
	rejected metric.Int64Counter
	revenue  metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of committed orders"))
	rejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of rejected order attempts"))
	revenue, _ := m.Float64Counter("orders.service.revenue", metric.WithDescription("Order totals including tax"))
	return serviceMetrics{placed: placed, rejected: rejected, revenue: revenue}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *domain.Order) {
	if m.placed != nil {
		m.placed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("walk_in", order.IsWalkIn())))
	}
	if m.revenue != nil {
		m.revenue.Add(ctx, order.Total.InexactFloat64())
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.rejected != nil {
		m.rejected.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
