package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
)

// Repository persists the order history in insertion order.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ExistsForCustomer(ctx context.Context, customerID int64) (bool, error)
	ReplaceAll(ctx context.Context, orders []*domain.Order) error
}

// CustomerDirectory resolves the billed party of an order.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id int64) (*customerdomain.Customer, error)
}

// ItemInventory is the slice of the catalog the engine needs to snapshot and reserve items.
type ItemInventory interface {
	GetByID(ctx context.Context, id int64) (*catalogdomain.Item, error)
	ReserveAll(ctx context.Context, reservations []catalogdomain.Reservation) ([]*catalogdomain.Item, error)
	Restock(ctx context.Context, id int64, qty int) (*catalogdomain.Item, error)
}
