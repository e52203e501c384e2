package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-core/internal/domains/orders/ports"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
	"github.com/Apurer/go-pos-core/internal/shared/ids"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order history.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	order  []int64
	seq    *ids.Sequence
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[int64]*domain.Order{},
		seq:    ids.NewSequence(),
	}
}

// Save appends an order when ID is zero, otherwise replaces the stored record. Records with an
// unknown non-zero ID only enter through ReplaceAll.
func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		clone.ID = r.seq.Next()
		r.order = append(r.order, clone.ID)
	} else if _, ok := r.orders[clone.ID]; !ok {
		return nil, apperrors.NotFound("order", clone.ID)
	}
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order", id)
	}
	return order.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return apperrors.NotFound("order", id)
	}
	delete(r.orders, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the history in placement order.
func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	return r.filter(func(*domain.Order) bool { return true }), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *Repository) ExistsForCustomer(_ context.Context, customerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

// ReplaceAll swaps the history and restarts the id sequence after the highest id.
func (r *Repository) ReplaceAll(_ context.Context, orders []*domain.Order) error {
	next := make(map[int64]*domain.Order, len(orders))
	order := make([]int64, 0, len(orders))
	for _, o := range orders {
		if o == nil || o.ID <= 0 {
			return apperrors.NewFieldError("id", "imported orders need a positive id")
		}
		if _, dup := next[o.ID]; dup {
			return apperrors.NewFieldError("id", "duplicate order id in import")
		}
		next[o.ID] = o.Clone()
		order = append(order, o.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = next
	r.order = order
	r.seq.ResetTo(order...)
	return nil
}

func (r *Repository) filter(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.order))
	for _, id := range r.order {
		o := r.orders[id]
		if keep(o) {
			list = append(list, o.Clone())
		}
	}
	return list
}
