package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, inputs ...types.AddItemInput) (*Service, []int64) {
	t.Helper()
	svc := NewService(memory.NewRepository())
	ids := make([]int64, 0, len(inputs))
	for _, input := range inputs {
		item, err := svc.Add(context.Background(), input)
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	return svc, ids
}

func TestAdd_NormalizesCode(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.Add(context.Background(), types.AddItemInput{Code: " cake1 ", Name: "Cake", Price: price("20.00"), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "CAKE1", item.Code)
	assert.Equal(t, int64(1), item.ID)
	assert.True(t, item.Price.Equal(price("20")))
}

func TestAdd_Rejections(t *testing.T) {
	svc, _ := newTestService(t, types.AddItemInput{Code: "CAKE1", Name: "Cake", Price: price("20.00"), Stock: 3})
	ctx := context.Background()

	cases := map[string]types.AddItemInput{
		"short code":     {Code: "AB", Name: "Cake", Price: price("1.00")},
		"bad name":       {Code: "CAKE2", Name: "C4ke", Price: price("1.00")},
		"negative price": {Code: "CAKE2", Name: "Cake", Price: price("-1.00")},
		"three decimals": {Code: "CAKE2", Name: "Cake", Price: price("1.005")},
		"negative stock": {Code: "CAKE2", Name: "Cake", Price: price("1.00"), Stock: -1},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Add(ctx, input)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Add(ctx, types.AddItemInput{Code: "cake1", Name: "Other Cake", Price: price("1.00")})
	require.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdd_ZeroPriceAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	item, err := svc.Add(context.Background(), types.AddItemInput{Code: "FREE1", Name: "Sample", Price: decimal.Zero, Stock: 1})
	require.NoError(t, err)
	assert.True(t, item.Price.IsZero())
}

func TestUpdate_PatchesFieldsButNotStock(t *testing.T) {
	svc, ids := newTestService(t, types.AddItemInput{Code: "CAKE1", Name: "Cake", Price: price("20.00"), Stock: 3})
	ctx := context.Background()

	newPrice := price("15.00")
	updated, err := svc.Update(ctx, ids[0], types.ItemPatch{Name: strPtr("Birthday Cake"), Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Birthday Cake", updated.Name)
	assert.Equal(t, "CAKE1", updated.Code)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, 3, updated.Stock)

	_, err = svc.Update(ctx, 42, types.ItemPatch{Name: strPtr("Ghost")})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdate_DuplicateCode(t *testing.T) {
	svc, ids := newTestService(t,
		types.AddItemInput{Code: "CAKE1", Name: "Cake", Price: price("20.00"), Stock: 3},
		types.AddItemInput{Code: "CAKE2", Name: "Other Cake", Price: price("10.00"), Stock: 3},
	)

	_, err := svc.Update(context.Background(), ids[1], types.ItemPatch{Code: strPtr("cake1")})
	require.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	stored, err := svc.Get(context.Background(), ids[1])
	require.NoError(t, err)
	assert.Equal(t, "CAKE2", stored.Code)
}

func TestReserveAndRestock(t *testing.T) {
	svc, ids := newTestService(t, types.AddItemInput{Code: "CAKE1", Name: "Cake", Price: price("20.00"), Stock: 3})
	ctx := context.Background()

	item, err := svc.Reserve(ctx, ids[0], 2)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Stock)

	_, err = svc.Reserve(ctx, ids[0], 2)
	var stock *apperrors.StockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, 2, stock.Requested)
	assert.Equal(t, 1, stock.Available)

	_, err = svc.Restock(ctx, ids[0], 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	item, err = svc.Restock(ctx, ids[0], 4)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Stock)
}

func TestStockViews(t *testing.T) {
	svc, _ := newTestService(t,
		types.AddItemInput{Code: "CHOC001", Name: "Chocolate Cake", Price: price("25.99"), Stock: 15},
		types.AddItemInput{Code: "VAN001", Name: "Vanilla Cake", Price: price("22.99"), Stock: 2},
		types.AddItemInput{Code: "CUP001", Name: "Cupcakes", Price: price("12.99"), Stock: 0},
	)
	ctx := context.Background()

	inStock, err := svc.InStock(ctx)
	require.NoError(t, err)
	assert.Len(t, inStock, 2)

	low, err := svc.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "VAN001", low[0].Code)

	out, err := svc.OutOfStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CUP001", out[0].Code)

	_, err = svc.LowStock(ctx, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	svc, ids := newTestService(t, types.AddItemInput{Code: "CAKE1", Name: "Cake", Price: price("20.00"), Stock: 3})
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, ids[0], confirm.Never), apperrors.ErrCancelled)
	_, err := svc.Get(ctx, ids[0])
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, ids[0], nil))
	_, err = svc.Get(ctx, ids[0])
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, ids[0], nil), apperrors.ErrNotFound)
}
