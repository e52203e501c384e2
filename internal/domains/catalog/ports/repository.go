package ports

import (
	"context"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
)

// Repository owns catalog items and their stock. Implementations enforce case-insensitive code
// uniqueness and apply stock changes atomically with their checks.
type Repository interface {
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Item, error)
	Search(ctx context.Context, query string) ([]*domain.Item, error)
	Reserve(ctx context.Context, id int64, qty int) (*domain.Item, error)
	Restock(ctx context.Context, id int64, qty int) (*domain.Item, error)
	// ReserveAll applies every reservation or none of them.
	ReserveAll(ctx context.Context, reservations []domain.Reservation) ([]*domain.Item, error)
	ReplaceAll(ctx context.Context, items []*domain.Item) error
}
