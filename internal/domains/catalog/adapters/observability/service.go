package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
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

// New wraps the core catalog service.
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

func (s *Service) Add(ctx context.Context, input types.AddItemInput) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Add", trace.WithAttributes(attribute.String("item.code", input.Code)))
	defer span.End()

	s.logInfo(ctx, "adding item", slog.String("item.code", input.Code), slog.String("item.name", input.Name))
	result, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item", slog.String("item.code", input.Code))
	}
	span.SetAttributes(attribute.Int64("item.id", result.ID))
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "item added", slog.Int64("item.id", result.ID), slog.String("item.code", result.Code))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch types.ItemPatch) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Update", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating item", slog.Int64("item.id", id))
	result, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item", slog.Int64("item.id", id))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "item updated", slog.Int64("item.id", id), slog.String("item.price", result.Price.StringFixed(2)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting item", slog.Int64("item.id", id))
	if err := s.inner.Delete(ctx, id, confirmer); err != nil {
		return s.handleError(ctx, span, err, "failed to delete item", slog.Int64("item.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "item deleted", slog.Int64("item.id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load item", slog.Int64("item.id", id))
	}
	return result, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("item.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search items")
	}
	span.SetAttributes(attribute.Int("item.matches", len(result)))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list items")
	}
	span.SetAttributes(attribute.Int("item.count", len(result)))
	return result, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Count")
	defer span.End()

	result, err := s.inner.Count(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count items")
	}
	return result, nil
}

func (s *Service) Reserve(ctx context.Context, id int64, qty int) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Reserve", trace.WithAttributes(
		attribute.Int64("item.id", id),
		attribute.Int("item.quantity", qty),
	))
	defer span.End()

	result, err := s.inner.Reserve(ctx, id, qty)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to reserve stock", slog.Int64("item.id", id), slog.Int("item.quantity", qty))
	}
	s.metrics.recordStock(ctx, "reserve", qty)
	s.logInfo(ctx, "stock reserved", slog.Int64("item.id", id), slog.Int("item.stock", result.Stock))
	return result, nil
}

func (s *Service) Restock(ctx context.Context, id int64, qty int) (*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Restock", trace.WithAttributes(
		attribute.Int64("item.id", id),
		attribute.Int("item.quantity", qty),
	))
	defer span.End()

	result, err := s.inner.Restock(ctx, id, qty)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to restock item", slog.Int64("item.id", id), slog.Int("item.quantity", qty))
	}
	s.metrics.recordStock(ctx, "restock", qty)
	s.logInfo(ctx, "item restocked", slog.Int64("item.id", id), slog.Int("item.stock", result.Stock))
	return result, nil
}

func (s *Service) InStock(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.InStock")
	defer span.End()

	result, err := s.inner.InStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list in-stock items")
	}
	span.SetAttributes(attribute.Int("item.count", len(result)))
	return result, nil
}

func (s *Service) LowStock(ctx context.Context, threshold int) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.LowStock", trace.WithAttributes(attribute.Int("item.threshold", threshold)))
	defer span.End()

	result, err := s.inner.LowStock(ctx, threshold)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list low-stock items")
	}
	span.SetAttributes(attribute.Int("item.count", len(result)))
	return result, nil
}

func (s *Service) OutOfStock(ctx context.Context) ([]*domain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.OutOfStock")
	defer span.End()

	result, err := s.inner.OutOfStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list out-of-stock items")
	}
	span.SetAttributes(attribute.Int("item.count", len(result)))
	return result, nil
}

func (s *Service) ReplaceAll(ctx context.Context, items []*domain.Item) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ReplaceAll", trace.WithAttributes(attribute.Int("item.count", len(items))))
	defer span.End()

	s.logInfo(ctx, "replacing catalog", slog.Int("item.count", len(items)))
	if err := s.inner.ReplaceAll(ctx, items); err != nil {
		return s.handleError(ctx, span, err, "failed to replace catalog")
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
	mutations metric.Int64Counter
	units     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("catalog.service.mutations", metric.WithDescription("Number of catalog mutations"))
	units, _ := m.Int64Counter("catalog.service.stock_units", metric.WithDescription("Units moved by manual reserve and restock"))
	return serviceMetrics{mutations: mutations, units: units}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (m serviceMetrics) recordStock(ctx context.Context, op string, qty int) {
	if m.units != nil {
		m.units.Add(ctx, int64(qty), metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.Service = (*Service)(nil)
