package ports

import (
	"context"

	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
)

// Repository owns customer records. Implementations enforce contact uniqueness atomically
// and return ErrNotFound / ErrDuplicateContact kinds from internal/shared/errors.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Customer, error)
	Search(ctx context.Context, query string) ([]*domain.Customer, error)
	ReplaceAll(ctx context.Context, customers []*domain.Customer) error
}
