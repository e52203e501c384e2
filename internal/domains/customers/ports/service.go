package ports

import (
	"context"

	"github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
)

// Service exposes customer use cases to the presentation layer.
type Service interface {
	Add(ctx context.Context, input types.AddCustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Search(ctx context.Context, query string) ([]*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, customers []*domain.Customer) error
}
