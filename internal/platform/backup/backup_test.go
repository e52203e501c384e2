package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-pos-core/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-pos-core/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/go-pos-core/internal/domains/catalog/application/types"
	customermemory "github.com/Apurer/go-pos-core/internal/domains/customers/adapters/memory"
	customerapp "github.com/Apurer/go-pos-core/internal/domains/customers/application"
	customertypes "github.com/Apurer/go-pos-core/internal/domains/customers/application/types"
	ordermemory "github.com/Apurer/go-pos-core/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/go-pos-core/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

type fixture struct {
	customers *customerapp.Service
	catalog   *catalogapp.Service
	orders    *orderapp.Engine
	backup    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	customerRepo := customermemory.NewRepository()
	itemRepo := catalogmemory.NewRepository()
	engine := orderapp.NewEngine(ordermemory.NewRepository(), customerRepo, itemRepo)
	customers := customerapp.NewService(customerRepo, engine)
	catalog := catalogapp.NewService(itemRepo)
	exportedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &fixture{
		customers: customers,
		catalog:   catalog,
		orders:    engine,
		backup:    NewService(customers, catalog, engine, WithClock(func() time.Time { return exportedAt })),
	}
}

func (f *fixture) populate(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	ann, err := f.customers.Add(ctx, customertypes.AddCustomerInput{Name: "Ann Lee", Contact: "555-0101", Address: "1 Baker St."})
	require.NoError(t, err)
	cake, err := f.catalog.Add(ctx, catalogtypes.AddItemInput{Code: "CAKE1", Name: "Cake", Price: decimal.RequireFromString("20.00"), Stock: 3})
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(ctx, ordertypes.ForCustomer(ann.ID, ordertypes.CartLine{ItemID: cake.ID, Quantity: 2}))
	require.NoError(t, err)
}

func TestExportResetImport_RoundTrip(t *testing.T) {
	f := newFixture(t)
	f.populate(t)
	ctx := context.Background()

	var buf bytes.Buffer
	doc, err := f.backup.Export(ctx, &buf, FormatJSON)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, doc.SnapshotID)
	assert.Contains(t, buf.String(), `"total": "44"`)

	require.ErrorIs(t, f.backup.Reset(ctx, confirm.Never), apperrors.ErrCancelled)
	require.NoError(t, f.backup.Reset(ctx, confirm.Always))
	count, err := f.customers.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	imported, err := f.backup.Import(ctx, &buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, doc.SnapshotID, imported.SnapshotID)

	orders, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "44.00", orders[0].Total.StringFixed(2))

	item, err := f.catalog.Get(ctx, orders[0].Lines[0].ItemID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Stock)

	next, err := f.customers.Add(ctx, customertypes.AddCustomerInput{Name: "Bob Ray", Contact: "555-0102"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)

	require.ErrorIs(t, f.customers.Delete(ctx, orders[0].CustomerID, nil), apperrors.ErrReferentialConflict)
}

func TestRestore_RejectsDanglingCustomer(t *testing.T) {
	f := newFixture(t)
	f.populate(t)
	ctx := context.Background()

	doc, err := f.backup.Snapshot(ctx)
	require.NoError(t, err)
	doc.Customers = nil

	require.ErrorIs(t, f.backup.Restore(ctx, doc), apperrors.ErrReferentialConflict)
	count, err := f.customers.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRestore_RollsBackWhenAStoreRejects(t *testing.T) {
	f := newFixture(t)
	f.populate(t)
	ctx := context.Background()

	doc, err := f.backup.Snapshot(ctx)
	require.NoError(t, err)
	doc.Customers = append(doc.Customers, CustomerRecord{ID: 9, Name: "Eve Moss", Contact: "555-0199"})
	doc.Items = append(doc.Items, ItemRecord{ID: 7, Code: "cake1", Name: "Copy Cake", Price: decimal.NewFromInt(1)})

	require.ErrorIs(t, f.backup.Restore(ctx, doc), apperrors.ErrDuplicateCode)

	customers, err := f.customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	orders, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestImport_RejectsMalformedDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.backup.Import(ctx, strings.NewReader(`{"version":1,"unexpected":true}`), FormatJSON)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	raw, err := json.Marshal(Document{Version: 99})
	require.NoError(t, err)
	_, err = f.backup.Import(ctx, bytes.NewReader(raw), FormatJSON)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestExportImport_YAML(t *testing.T) {
	f := newFixture(t)
	f.populate(t)
	ctx := context.Background()

	var buf bytes.Buffer
	doc, err := f.backup.Export(ctx, &buf, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "snapshotId: "+doc.SnapshotID.String())
	assert.Contains(t, buf.String(), "code: CAKE1")

	target := newFixture(t)
	imported, err := target.backup.Import(ctx, &buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, doc.SnapshotID, imported.SnapshotID)

	orders, err := target.orders.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "44.00", orders[0].Total.StringFixed(2))
	assert.Equal(t, "20.00", orders[0].Lines[0].UnitPrice.StringFixed(2))

	_, err = target.backup.Import(ctx, strings.NewReader("version: 1\nextra: true\n"), FormatYAML)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("/tmp/pos.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("backup.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("backup.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("backup"))
}
