// Package backup exports, imports and resets the full contents of the customer, catalog and
// order stores.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-pos-core/internal/domains/catalog/ports"
	customerdomain "github.com/Apurer/go-pos-core/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	orderdomain "github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-pos-core/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// Service moves whole-store snapshots in and out.
type Service struct {
	customers customerports.Service
	catalog   catalogports.Service
	orders    orderports.Service
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(customers customerports.Service, catalog catalogports.Service, orders orderports.Service, opts ...Option) *Service {
	s := &Service{
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Snapshot reads every store into a Document.
func (s *Service) Snapshot(ctx context.Context) (*Document, error) {
	customers, items, orders, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Version:    FormatVersion,
		SnapshotID: uuid.New(),
		ExportedAt: s.now().UTC(),
		Customers:  make([]CustomerRecord, 0, len(customers)),
		Items:      make([]ItemRecord, 0, len(items)),
		Orders:     make([]OrderRecord, 0, len(orders)),
	}
	for _, c := range customers {
		doc.Customers = append(doc.Customers, fromCustomer(c))
	}
	for _, i := range items {
		doc.Items = append(doc.Items, fromItem(i))
	}
	for _, o := range orders {
		doc.Orders = append(doc.Orders, fromOrder(o))
	}
	return doc, nil
}

// Export writes a snapshot of every store to w.
func (s *Service) Export(ctx context.Context, w io.Writer, format Format) (*Document, error) {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := encode(w, doc, format); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "backup exported",
		slog.String("snapshot.id", doc.SnapshotID.String()),
		slog.String("format", string(format)),
		slog.Int("customers", len(doc.Customers)),
		slog.Int("items", len(doc.Items)),
		slog.Int("orders", len(doc.Orders)),
	)
	return doc, nil
}

// Import reads a snapshot from r and replaces every store with it.
func (s *Service) Import(ctx context.Context, r io.Reader, format Format) (*Document, error) {
	var doc Document
	if err := decode(r, format, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode backup: %w", apperrors.ErrInvalidInput, err)
	}
	if err := s.Restore(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Restore replaces every store with the document contents. Either all stores are replaced or,
// when any store rejects its records, all of them are put back as they were.
func (s *Service) Restore(ctx context.Context, doc *Document) error {
	if doc == nil {
		return apperrors.NewFieldError("document", "is required")
	}
	if doc.Version != FormatVersion {
		return apperrors.NewFieldError("version", fmt.Sprintf("unsupported backup version %d", doc.Version))
	}
	customers, items, orders := doc.decode()
	if err := checkReferences(customers, orders); err != nil {
		return err
	}

	prevCustomers, prevItems, prevOrders, err := s.current(ctx)
	if err != nil {
		return err
	}
	if err := s.replace(ctx, customers, items, orders); err != nil {
		if rollbackErr := s.replace(ctx, prevCustomers, prevItems, prevOrders); rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
		}
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "backup restored",
		slog.String("snapshot.id", doc.SnapshotID.String()),
		slog.Int("customers", len(customers)),
		slog.Int("items", len(items)),
		slog.Int("orders", len(orders)),
	)
	return nil
}

// Reset empties every store after confirmation.
func (s *Service) Reset(ctx context.Context, confirmer confirm.Confirmer) error {
	if !confirm.Approved(ctx, confirmer, "Reset all data? This cannot be undone.") {
		return apperrors.ErrCancelled
	}
	if err := s.replace(ctx, nil, nil, nil); err != nil {
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "all stores reset")
	return nil
}

// replace clears orders first so customers are never removed underneath an order.
func (s *Service) replace(ctx context.Context, customers []*customerdomain.Customer, items []*catalogdomain.Item, orders []*orderdomain.Order) error {
	if err := s.orders.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	if err := s.customers.ReplaceAll(ctx, customers); err != nil {
		return err
	}
	if err := s.catalog.ReplaceAll(ctx, items); err != nil {
		return err
	}
	return s.orders.ReplaceAll(ctx, orders)
}

func (s *Service) current(ctx context.Context) ([]*customerdomain.Customer, []*catalogdomain.Item, []*orderdomain.Order, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return customers, items, orders, nil
}

func (d *Document) decode() ([]*customerdomain.Customer, []*catalogdomain.Item, []*orderdomain.Order) {
	customers := make([]*customerdomain.Customer, 0, len(d.Customers))
	for _, r := range d.Customers {
		customers = append(customers, r.toDomain())
	}
	items := make([]*catalogdomain.Item, 0, len(d.Items))
	for _, r := range d.Items {
		items = append(items, r.toDomain())
	}
	orders := make([]*orderdomain.Order, 0, len(d.Orders))
	for _, r := range d.Orders {
		orders = append(orders, r.toDomain())
	}
	return customers, items, orders
}

func checkReferences(customers []*customerdomain.Customer, orders []*orderdomain.Order) error {
	known := make(map[int64]bool, len(customers))
	for _, c := range customers {
		known[c.ID] = true
	}
	for _, o := range orders {
		if !o.IsWalkIn() && !known[o.CustomerID] {
			return apperrors.Wrap(apperrors.ErrReferentialConflict, "order", o.ID,
				fmt.Sprintf("order references unknown customer %d", o.CustomerID))
		}
	}
	return nil
}
