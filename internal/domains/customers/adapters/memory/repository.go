package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	"github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
	"github.com/Apurer/go-pos-core/internal/shared/ids"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer store that keeps insertion order.
type Repository struct {
	mu        sync.RWMutex
	customers map[int64]*domain.Customer
	order     []int64
	seq       *ids.Sequence
	now       func() time.Time
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		customers: map[int64]*domain.Customer{},
		seq:       ids.NewSequence(),
		now:       time.Now,
	}
}

// WithClock overrides the timestamp source.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	if now != nil {
		r.now = now
	}
	return r
}

// Save inserts a customer when ID is zero, otherwise replaces the stored record. A non-zero ID
// that is no longer stored yields NotFound, so an update racing a delete cannot resurrect it.
func (r *Repository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("cannot save nil customer")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := customer.Clone()
	if existing := r.findByContactLocked(clone.Contact); existing != nil && existing.ID != clone.ID {
		return nil, apperrors.Wrap(apperrors.ErrDuplicateContact, "customer", existing.ID,
			"a customer with this contact number already exists")
	}

	timestamp := r.now()
	if clone.ID == 0 {
		clone.ID = r.seq.Next()
		clone.CreatedAt = timestamp
		clone.UpdatedAt = time.Time{}
		r.order = append(r.order, clone.ID)
	} else if stored, ok := r.customers[clone.ID]; ok {
		clone.CreatedAt = stored.CreatedAt
		clone.UpdatedAt = timestamp
	} else {
		return nil, apperrors.NotFound("customer", clone.ID)
	}
	r.customers[clone.ID] = clone
	return clone.Clone(), nil
}

// GetByID fetches a customer if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, apperrors.NotFound("customer", id)
	}
	return customer.Clone(), nil
}

// Delete removes a customer.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return apperrors.NotFound("customer", id)
	}
	delete(r.customers, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all customers in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Customer, error) {
	return r.Search(ctx, "")
}

// Search returns customers matching the query in insertion order.
func (r *Repository) Search(_ context.Context, query string) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		customer := r.customers[id]
		if customer.Matches(query) {
			list = append(list, customer.Clone())
		}
	}
	return list, nil
}

// ReplaceAll swaps the whole collection and restarts the id sequence after the highest id.
func (r *Repository) ReplaceAll(_ context.Context, customers []*domain.Customer) error {
	next := make(map[int64]*domain.Customer, len(customers))
	order := make([]int64, 0, len(customers))
	contacts := make(map[string]int64, len(customers))
	for _, customer := range customers {
		if customer == nil || customer.ID <= 0 {
			return apperrors.NewFieldError("id", "imported customers need a positive id")
		}
		if _, dup := next[customer.ID]; dup {
			return apperrors.NewFieldError("id", "duplicate customer id in import")
		}
		if owner, dup := contacts[customer.Contact]; dup {
			return apperrors.Wrap(apperrors.ErrDuplicateContact, "customer", owner,
				"a customer with this contact number already exists")
		}
		contacts[customer.Contact] = customer.ID
		next[customer.ID] = customer.Clone()
		order = append(order, customer.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = next
	r.order = order
	r.seq.ResetTo(order...)
	return nil
}

func (r *Repository) findByContactLocked(contact string) *domain.Customer {
	for _, customer := range r.customers {
		if customer.Contact == contact {
			return customer
		}
	}
	return nil
}
