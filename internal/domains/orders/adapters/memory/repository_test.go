package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func newOrder(t *testing.T, customerID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customerID, []domain.Line{
		{ItemID: 1, Code: "CAKE1", Name: "Cake", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}, time.Now())
	require.NoError(t, err)
	return order
}

func TestRepository_InsertionOrderAndFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, customer := range []int64{2, 1, 2} {
		_, err := repo.Save(ctx, newOrder(t, customer))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListByCustomer(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, int64(1), mine[0].ID)
	require.Equal(t, int64(3), mine[1].ID)

	exists, err := repo.ExistsForCustomer(ctx, 1)
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = repo.ExistsForCustomer(ctx, 9)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newOrder(t, 1))
	require.NoError(t, err)

	saved.Lines[0].UnitPrice = decimal.NewFromInt(99)
	stored, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, stored.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
}

func TestRepository_DeleteAndReplaceAll(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, newOrder(t, 1))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	require.ErrorIs(t, repo.Delete(ctx, saved.ID), apperrors.ErrNotFound)
	_, err = repo.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	imported := newOrder(t, 3)
	imported.ID = 40
	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Order{imported}))
	next, err := repo.Save(ctx, newOrder(t, 3))
	require.NoError(t, err)
	require.Equal(t, int64(41), next.ID)

	require.ErrorIs(t, repo.ReplaceAll(ctx, []*domain.Order{newOrder(t, 1)}), apperrors.ErrInvalidInput)
}

func TestRepository_SaveUnknownIDIsNotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	stray := newOrder(t, 1)
	stray.ID = 9
	_, err := repo.Save(ctx, stray)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
