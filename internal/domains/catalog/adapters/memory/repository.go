package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
	"github.com/Apurer/go-pos-core/internal/shared/ids"
	"github.com/Apurer/go-pos-core/internal/shared/validation"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog. A single mutex guards both item data and stock, so
// every check-then-mutate runs as one step.
type Repository struct {
	mu    sync.RWMutex
	items map[int64]*domain.Item
	order []int64
	seq   *ids.Sequence
	now   func() time.Time
}

// NewRepository constructs an empty catalog.
func NewRepository() *Repository {
	return &Repository{
		items: map[int64]*domain.Item{},
		seq:   ids.NewSequence(),
		now:   time.Now,
	}
}

// WithClock overrides the timestamp source.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	if now != nil {
		r.now = now
	}
	return r
}

// Save inserts an item when ID is zero, otherwise replaces the stored record without touching
// its stock. A non-zero ID that is no longer stored yields NotFound.
func (r *Repository) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("cannot save nil item")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := item.Clone()
	clone.Code = validation.NormalizeItemCode(clone.Code)
	if existing := r.findByCodeLocked(clone.Code); existing != nil && existing.ID != clone.ID {
		return nil, apperrors.Wrap(apperrors.ErrDuplicateCode, "item", existing.ID, "an item with this code already exists")
	}

	timestamp := r.now()
	if clone.ID == 0 {
		clone.ID = r.seq.Next()
		clone.CreatedAt = timestamp
		clone.UpdatedAt = time.Time{}
		r.order = append(r.order, clone.ID)
	} else if stored, ok := r.items[clone.ID]; ok {
		clone.CreatedAt = stored.CreatedAt
		clone.Stock = stored.Stock
		clone.UpdatedAt = timestamp
	} else {
		return nil, apperrors.NotFound("item", clone.ID)
	}
	r.items[clone.ID] = clone
	return clone.Clone(), nil
}

// GetByID fetches an item if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("item", id)
	}
	return item.Clone(), nil
}

// Delete removes an item.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.NotFound("item", id)
	}
	delete(r.items, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns every item in insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	return r.Search(ctx, "")
}

// Search returns items whose name or code contains the query.
func (r *Repository) Search(_ context.Context, query string) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.Matches(query) {
			list = append(list, item.Clone())
		}
	}
	return list, nil
}

// Reserve decrements one item's stock.
func (r *Repository) Reserve(_ context.Context, id int64, qty int) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("item", id)
	}
	if err := item.Reserve(qty); err != nil {
		return nil, err
	}
	item.UpdatedAt = r.now()
	return item.Clone(), nil
}

// Restock increments one item's stock.
func (r *Repository) Restock(_ context.Context, id int64, qty int) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("item", id)
	}
	if err := item.Restock(qty); err != nil {
		return nil, err
	}
	item.UpdatedAt = r.now()
	return item.Clone(), nil
}

// ReserveAll checks every reservation against current stock and only then decrements.
// Quantities for the same item are claimed cumulatively, so their sum never exceeds stock.
// The returned items follow the order of first appearance in reservations.
func (r *Repository) ReserveAll(_ context.Context, reservations []domain.Reservation) ([]*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range reservations {
		if _, ok := r.items[res.ItemID]; !ok {
			return nil, apperrors.NotFound("item", res.ItemID)
		}
		if res.Quantity <= 0 {
			return nil, apperrors.NewFieldError("quantity", "quantity to reserve must be positive")
		}
	}
	totals := make(map[int64]int, len(reservations))
	var order []int64
	for _, res := range reservations {
		claimed, seen := totals[res.ItemID]
		if !seen {
			order = append(order, res.ItemID)
		}
		if err := r.items[res.ItemID].CanCoverMore(claimed, res.Quantity); err != nil {
			return nil, err
		}
		totals[res.ItemID] = claimed + res.Quantity
	}

	timestamp := r.now()
	reserved := make([]*domain.Item, 0, len(order))
	for _, id := range order {
		item := r.items[id]
		item.Stock -= totals[id]
		item.UpdatedAt = timestamp
		reserved = append(reserved, item.Clone())
	}
	return reserved, nil
}

// ReplaceAll swaps the whole catalog and restarts the id sequence after the highest id.
func (r *Repository) ReplaceAll(_ context.Context, items []*domain.Item) error {
	next := make(map[int64]*domain.Item, len(items))
	order := make([]int64, 0, len(items))
	codes := make(map[string]int64, len(items))
	for _, item := range items {
		if item == nil || item.ID <= 0 {
			return apperrors.NewFieldError("id", "imported items need a positive id")
		}
		if _, dup := next[item.ID]; dup {
			return apperrors.NewFieldError("id", "duplicate item id in import")
		}
		clone := item.Clone()
		clone.Code = validation.NormalizeItemCode(clone.Code)
		if owner, dup := codes[clone.Code]; dup {
			return apperrors.Wrap(apperrors.ErrDuplicateCode, "item", owner, "an item with this code already exists")
		}
		codes[clone.Code] = clone.ID
		next[clone.ID] = clone
		order = append(order, clone.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	r.order = order
	r.seq.ResetTo(order...)
	return nil
}

func (r *Repository) findByCodeLocked(code string) *domain.Item {
	for _, item := range r.items {
		if item.Code == code {
			return item
		}
	}
	return nil
}
