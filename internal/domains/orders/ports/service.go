package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
)

// Service exposes order placement and history queries.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error)
	Today(ctx context.Context) ([]*domain.Order, error)
	Statistics(ctx context.Context) (types.Statistics, error)
	HasOrdersForCustomer(ctx context.Context, customerID int64) (bool, error)
	Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error
	ReplaceAll(ctx context.Context, orders []*domain.Order) error
}
