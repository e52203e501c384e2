package application

import (
	"context"
	"fmt"

	"github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	"github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// Service orchestrates the customer use cases.
type Service struct {
	repo       ports.Repository
	references ports.OrderReferences
}

// NewService wires the customer service. references may be nil when no order history exists.
func NewService(repo ports.Repository, references ports.OrderReferences) *Service {
	if references == nil {
		references = ports.NoOrderReferences
	}
	return &Service{repo: repo, references: references}
}

// Add validates and registers a new customer.
func (s *Service) Add(ctx context.Context, input types.AddCustomerInput) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(input.Name, input.Contact, input.Address)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a validated patch. Contact uniqueness is re-checked against all other customers.
func (s *Service) Update(ctx context.Context, id int64, patch types.CustomerPatch) (*domain.Customer, error) {
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

// Delete removes a customer that no order references.
func (s *Service) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if !confirm.Approved(ctx, confirmer, fmt.Sprintf("Delete customer %s (%s)?", customer.Name, customer.Contact)) {
		return apperrors.ErrCancelled
	}
	return s.references.GuardCustomerRemoval(ctx, id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

// Get loads a single customer.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

// Search matches customers by name, contact or address.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Customer, error) {
	return s.repo.Search(ctx, query)
}

// List returns every customer in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

// Count returns the number of customers.
func (s *Service) Count(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ReplaceAll validates every record and swaps the whole collection.
func (s *Service) ReplaceAll(ctx context.Context, customers []*domain.Customer) error {
	for _, customer := range customers {
		if customer == nil {
			continue
		}
		if err := customer.Validate(); err != nil {
			return mapError(fmt.Errorf("customer %d: %w", customer.ID, err))
		}
	}
	return mapError(s.repo.ReplaceAll(ctx, customers))
}

func applyPatch(target *domain.Customer, patch types.CustomerPatch) error {
	if patch.Name != nil {
		if err := target.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Contact != nil {
		if err := target.ChangeContact(*patch.Contact); err != nil {
			return err
		}
	}
	if patch.Address != nil {
		if err := target.ChangeAddress(*patch.Address); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
