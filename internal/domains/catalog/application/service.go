package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// Service orchestrates catalog and stock use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and registers a new item.
func (s *Service) Add(ctx context.Context, input types.AddItemInput) (*domain.Item, error) {
	item, err := domain.NewItem(input.Code, input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a validated patch to code, name or price. Stock only moves through Reserve and Restock.
func (s *Service) Update(ctx context.Context, id int64, patch types.ItemPatch) (*domain.Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyPatch(existing, patch); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes an item after confirmation. Placed orders keep their own line snapshots.
func (s *Service) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if !confirm.Approved(ctx, confirmer, fmt.Sprintf("Delete item %s (%s)?", item.Name, item.Code)) {
		return apperrors.ErrCancelled
	}
	return mapError(s.repo.Delete(ctx, id))
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Reserve takes qty units out of stock or fails with the shortage.
func (s *Service) Reserve(ctx context.Context, id int64, qty int) (*domain.Item, error) {
	item, err := s.repo.Reserve(ctx, id, qty)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// Restock puts qty units back on hand.
func (s *Service) Restock(ctx context.Context, id int64, qty int) (*domain.Item, error) {
	item, err := s.repo.Restock(ctx, id, qty)
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// InStock lists items with at least one unit available.
func (s *Service) InStock(ctx context.Context) ([]*domain.Item, error) {
	return s.filter(ctx, func(i *domain.Item) bool { return i.InStock() })
}

// LowStock lists available items whose stock is below threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]*domain.Item, error) {
	if threshold <= 0 {
		return nil, mapError(apperrors.NewFieldError("threshold", "must be positive"))
	}
	return s.filter(ctx, func(i *domain.Item) bool { return i.IsLowStock(threshold) })
}

func (s *Service) OutOfStock(ctx context.Context) ([]*domain.Item, error) {
	return s.filter(ctx, func(i *domain.Item) bool { return !i.InStock() })
}

// ReplaceAll validates every record and swaps the whole catalog.
func (s *Service) ReplaceAll(ctx context.Context, items []*domain.Item) error {
	for _, item := range items {
		if item == nil {
			continue
		}
		if err := item.Validate(); err != nil {
			return mapError(fmt.Errorf("item %d: %w", item.ID, err))
		}
	}
	return mapError(s.repo.ReplaceAll(ctx, items))
}

func (s *Service) filter(ctx context.Context, keep func(*domain.Item) bool) ([]*domain.Item, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Item, 0, len(list))
	for _, item := range list {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func applyPatch(target *domain.Item, patch types.ItemPatch) error {
	if patch.Code != nil {
		if err := target.Recode(*patch.Code); err != nil {
			return err
		}
	}
	if patch.Name != nil {
		if err := target.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := target.Reprice(*patch.Price); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
