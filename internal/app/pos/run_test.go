package pos

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordertypes "github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

func testConfig() Config {
	return Config{ServiceName: "pos-test", LowStockThreshold: 10, Location: time.UTC}
}

func TestBoot_SeedsSampleData(t *testing.T) {
	cfg := testConfig()
	cfg.SeedSampleData = true
	ctx := context.Background()

	app, err := Boot(ctx, cfg, nil, nil)
	require.NoError(t, err)

	snap, err := app.Dashboard.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalCustomers)
	assert.Equal(t, 8, snap.TotalItems)
	assert.Equal(t, 1, snap.LowStockCount)
	assert.Zero(t, snap.OutOfStockCount)

	var logs bytes.Buffer
	require.NoError(t, app.LogDashboard(ctx, slog.New(slog.NewJSONHandler(&logs, nil))))
	assert.Contains(t, logs.String(), `"items":8`)
}

func TestBoot_ExportThenImport(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.SeedSampleData = true
	cfg.AllowWalkIn = true

	seeded, err := Boot(ctx, cfg, nil, nil)
	require.NoError(t, err)
	_, err = seeded.Orders.PlaceOrder(ctx, ordertypes.ForCustomer(1, ordertypes.CartLine{ItemID: 1, Quantity: 2}))
	require.NoError(t, err)
	_, err = seeded.Orders.PlaceOrder(ctx, ordertypes.PlaceOrderInput{WalkIn: true, Lines: []ordertypes.CartLine{{ItemID: 8, Quantity: 1}}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	require.NoError(t, seeded.ExportFile(ctx, path))

	restoreCfg := testConfig()
	restoreCfg.ImportPath = path
	restored, err := Boot(ctx, restoreCfg, nil, nil)
	require.NoError(t, err)

	orders, err := restored.Orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "57.18", orders[0].Total.StringFixed(2))

	require.ErrorIs(t, restored.Customers.Delete(ctx, 1, nil), apperrors.ErrReferentialConflict)
	item, err := restored.Catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 13, item.Stock)
}

func TestBoot_MissingImportFile(t *testing.T) {
	cfg := testConfig()
	cfg.ImportPath = filepath.Join(t.TempDir(), "absent.json")
	_, err := Boot(context.Background(), cfg, nil, nil)
	require.Error(t, err)
}
