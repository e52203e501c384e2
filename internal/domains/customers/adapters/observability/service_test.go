package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/go-pos-core/internal/domains/customers/adapters/memory"
	"github.com/Apurer/go-pos-core/internal/domains/customers/application"
	"github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func TestService_RecordsSpansAndLogs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	svc := New(
		application.NewService(memory.NewRepository(), nil),
		WithLogger(logger),
		WithTracer(provider.Tracer("test")),
	)
	ctx := context.Background()

	created, err := svc.Add(ctx, types.AddCustomerInput{Name: "John Smith", Contact: "555-0101"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, types.AddCustomerInput{Name: "Jane Smith", Contact: "555-0101"})
	require.ErrorIs(t, err, apperrors.ErrDuplicateContact)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "CustomerService.Add", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)

	require.Contains(t, logs.String(), "customer added")
	require.Contains(t, logs.String(), "failed to add customer")
	require.NotZero(t, created.ID)
}
