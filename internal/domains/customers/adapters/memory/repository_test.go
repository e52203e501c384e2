package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func mustCustomer(t *testing.T, name, contact, address string) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(name, contact, address)
	require.NoError(t, err)
	return c
}

func TestRepository_SaveAssignsIDsAndTimestamps(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewRepository().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	first, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)
	second, err := repo.Save(ctx, mustCustomer(t, "Sarah Johnson", "555-0102", ""))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, fixed, first.CreatedAt)
	assert.True(t, first.UpdatedAt.IsZero())
}

func TestRepository_DuplicateContact(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)

	_, err = repo.Save(ctx, mustCustomer(t, "Other Person", "555-0101", ""))
	require.ErrorIs(t, err, apperrors.ErrDuplicateContact)

	saved.Name = "John Smithers"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err, "re-saving the owner of a contact is not a duplicate")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)

	saved.Name = "Mutated"
	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, "John Smith", fetched.Name)
}

func TestRepository_SearchKeepsInsertionOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, c := range []*domain.Customer{
		mustCustomer(t, "Zed Miller", "555-0300", "9 Pine Rd"),
		mustCustomer(t, "Amy Pine", "555-0100", ""),
		mustCustomer(t, "Bob Stone", "555-0200", ""),
	} {
		_, err := repo.Save(ctx, c)
		require.NoError(t, err)
	}

	found, err := repo.Search(ctx, "PINE")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Zed Miller", found[0].Name)
	assert.Equal(t, "Amy Pine", found[1].Name)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, saved.ID), apperrors.ErrNotFound)
}

func TestRepository_ReplaceAllResetsSequence(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)

	imported := mustCustomer(t, "Mike Wilson", "555-0103", "")
	imported.ID = 7
	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Customer{imported}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	next, err := repo.Save(ctx, mustCustomer(t, "New Person", "555-0104", ""))
	require.NoError(t, err)
	require.Equal(t, int64(8), next.ID)
}

func TestRepository_ReplaceAllRejectsDuplicates(t *testing.T) {
	repo := NewRepository()
	a := mustCustomer(t, "John Smith", "555-0101", "")
	a.ID = 1
	b := mustCustomer(t, "Jane Smith", "555-0101", "")
	b.ID = 2

	err := repo.ReplaceAll(context.Background(), []*domain.Customer{a, b})
	require.ErrorIs(t, err, apperrors.ErrDuplicateContact)
}

func TestRepository_SaveAfterDeleteIsNotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	saved, err := repo.Save(ctx, mustCustomer(t, "John Smith", "555-0101", ""))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	saved.Address = "123 Main St"
	_, err = repo.Save(ctx, saved)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
