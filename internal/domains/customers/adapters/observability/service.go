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

	"github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	"github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-pos-core/internal/domains/customers/adapters/observability/service"

// Service decorates the customer service with tracing, logging, and metrics.
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

// New wraps the core customer service.
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

func (s *Service) Add(ctx context.Context, input types.AddCustomerInput) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Add")
	defer span.End()

	s.logInfo(ctx, "adding customer", slog.String("customer.name", input.Name))
	result, err := s.inner.Add(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add customer")
	}
	span.SetAttributes(attribute.Int64("customer.id", result.ID))
	s.metrics.record(ctx, "add")
	s.logInfo(ctx, "customer added", slog.Int64("customer.id", result.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Update", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating customer", slog.Int64("customer.id", id))
	result, err := s.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update customer", slog.Int64("customer.id", id))
	}
	s.metrics.record(ctx, "update")
	s.logInfo(ctx, "customer updated", slog.Int64("customer.id", id))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Delete", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting customer", slog.Int64("customer.id", id))
	if err := s.inner.Delete(ctx, id, confirmer); err != nil {
		return s.handleError(ctx, span, err, "failed to delete customer", slog.Int64("customer.id", id))
	}
	s.metrics.record(ctx, "delete")
	s.logInfo(ctx, "customer deleted", slog.Int64("customer.id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Get", trace.WithAttributes(attribute.Int64("customer.id", id)))
	defer span.End()

	result, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.Int64("customer.id", id))
	}
	return result, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Search", trace.WithAttributes(attribute.String("customer.query", query)))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search customers")
	}
	span.SetAttributes(attribute.Int("customer.matches", len(result)))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customer.count", len(result)))
	return result, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Count")
	defer span.End()

	result, err := s.inner.Count(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count customers")
	}
	return result, nil
}

func (s *Service) ReplaceAll(ctx context.Context, customers []*domain.Customer) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ReplaceAll", trace.WithAttributes(attribute.Int("customer.count", len(customers))))
	defer span.End()

	s.logInfo(ctx, "replacing customers", slog.Int("customer.count", len(customers)))
	if err := s.inner.ReplaceAll(ctx, customers); err != nil {
		return s.handleError(ctx, span, err, "failed to replace customers")
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
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("customers.service.mutations", metric.WithDescription("Number of customer mutations"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) record(ctx context.Context, op string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}

var _ ports.Service = (*Service)(nil)
