package ports

import (
	"context"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
)

// Service exposes catalog use cases to the presentation layer.
type Service interface {
	Add(ctx context.Context, input types.AddItemInput) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch types.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error
	Get(ctx context.Context, id int64) (*domain.Item, error)
	Search(ctx context.Context, query string) ([]*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Count(ctx context.Context) (int, error)
	Reserve(ctx context.Context, id int64, qty int) (*domain.Item, error)
	Restock(ctx context.Context, id int64, qty int) (*domain.Item, error)
	InStock(ctx context.Context) ([]*domain.Item, error)
	LowStock(ctx context.Context, threshold int) ([]*domain.Item, error)
	OutOfStock(ctx context.Context) ([]*domain.Item, error)
	ReplaceAll(ctx context.Context, items []*domain.Item) error
}
