package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-pos-core/internal/domains/catalog/domain"
	customerports "github.com/Apurer/go-pos-core/internal/domains/customers/ports"
	"github.com/Apurer/go-pos-core/internal/domains/orders/application/types"
	"github.com/Apurer/go-pos-core/internal/domains/orders/domain"
	"github.com/Apurer/go-pos-core/internal/domains/orders/ports"
	"github.com/Apurer/go-pos-core/internal/shared/confirm"
	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// Engine turns carts into committed orders and owns the order history.
//
// Every operation that reads or changes the history runs under mu, so the stock pre-check and the
// reservation of one PlaceOrder never interleave with another placement or with a customer removal.
type Engine struct {
	mu        sync.Mutex
	orders    ports.Repository
	customers ports.CustomerDirectory
	items     ports.ItemInventory

	now         func() time.Time
	location    *time.Location
	allowWalkIn bool
}

type Option func(*Engine)

// WithWalkIn allows orders without a registered customer.
func WithWalkIn(allow bool) Option {
	return func(e *Engine) {
		e.allowWalkIn = allow
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the time zone that decides which calendar day is "today".
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

func NewEngine(orders ports.Repository, customers ports.CustomerDirectory, items ports.ItemInventory, opts ...Option) *Engine {
	e := &Engine{
		orders:    orders,
		customers: customers,
		items:     items,
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// PlaceOrder validates the cart, reserves stock for every line and appends the priced order.
// On any failure the customer, item and order stores are left unchanged.
func (e *Engine) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	customerID, walkIn, err := e.billedParty(input)
	if err != nil {
		return nil, err
	}
	if len(input.Lines) == 0 {
		return nil, apperrors.ErrEmptyOrder
	}
	if !walkIn {
		if _, err := e.customers.GetByID(ctx, customerID); err != nil {
			return nil, lookupAs(err, apperrors.ErrInvalidCustomer, "customer", customerID, "customer does not exist")
		}
	}

	reservations, err := e.precheck(ctx, input.Lines)
	if err != nil {
		return nil, mapError(err)
	}
	reserved, err := e.items.ReserveAll(ctx, reservations)
	if err != nil {
		return nil, mapError(lookupReservationError(err))
	}

	snapshots := make(map[int64]*catalogdomain.Item, len(reserved))
	for _, item := range reserved {
		snapshots[item.ID] = item
	}
	lines := make([]domain.Line, 0, len(input.Lines))
	for _, cart := range input.Lines {
		item := snapshots[cart.ItemID]
		lines = append(lines, domain.Line{
			ItemID:    item.ID,
			Code:      item.Code,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  cart.Quantity,
		})
	}

	order, err := domain.NewOrder(customerID, lines, e.now())
	if err == nil {
		order, err = e.orders.Save(ctx, order)
	}
	if err != nil {
		if releaseErr := e.release(ctx, reservations); releaseErr != nil {
			return nil, errors.Join(mapError(err), releaseErr)
		}
		return nil, mapError(err)
	}
	return order, nil
}

// billedParty picks the customer id to bill. walkIn is true only for an allowed walk-in sale;
// an explicit id, including 0, is always looked up.
func (e *Engine) billedParty(input types.PlaceOrderInput) (id int64, walkIn bool, err error) {
	if input.CustomerID != nil {
		return *input.CustomerID, false, nil
	}
	if input.WalkIn && e.allowWalkIn {
		return domain.WalkInCustomerID, true, nil
	}
	return 0, false, apperrors.ErrMissingCustomer
}

// precheck resolves every line and checks the running quantity per item against current stock.
// It returns one reservation per distinct item in first-appearance order.
func (e *Engine) precheck(ctx context.Context, lines []types.CartLine) ([]catalogdomain.Reservation, error) {
	items := make(map[int64]*catalogdomain.Item, len(lines))
	var order []int64
	for _, line := range lines {
		item, seen := items[line.ItemID]
		if !seen {
			var err error
			item, err = e.items.GetByID(ctx, line.ItemID)
			if err != nil {
				return nil, lookupAs(err, apperrors.ErrInvalidItem, "item", line.ItemID, "item does not exist")
			}
			items[line.ItemID] = item
			order = append(order, line.ItemID)
		}
		if line.Quantity <= 0 {
			return nil, apperrors.NewFieldError("quantity", fmt.Sprintf("quantity for %s must be greater than zero", item.Code))
		}
	}

	totals := make(map[int64]int, len(order))
	for _, line := range lines {
		claimed := totals[line.ItemID]
		if err := items[line.ItemID].CanCoverMore(claimed, line.Quantity); err != nil {
			return nil, err
		}
		totals[line.ItemID] = claimed + line.Quantity
	}

	reservations := make([]catalogdomain.Reservation, 0, len(order))
	for _, id := range order {
		reservations = append(reservations, catalogdomain.Reservation{ItemID: id, Quantity: totals[id]})
	}
	return reservations, nil
}

func lookupReservationError(err error) error {
	var lookup *apperrors.LookupError
	if apperrors.As(err, &lookup) && apperrors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Wrap(apperrors.ErrInvalidItem, "item", lookup.ID, "item does not exist")
	}
	return err
}

// release puts reserved stock back after the order could not be recorded.
func (e *Engine) release(ctx context.Context, reservations []catalogdomain.Reservation) error {
	var errs []error
	for _, res := range reservations {
		if _, err := e.items.Restock(ctx, res.ItemID, res.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("release %d units of item %d: %w", res.Quantity, res.ItemID, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return e.orders.GetByID(ctx, id)
}

// ListAll returns the history in placement order.
func (e *Engine) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return e.orders.List(ctx)
}

func (e *Engine) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	return e.orders.ListByCustomer(ctx, customerID)
}

// ListByDateRange returns orders created in [start, end).
func (e *Engine) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Order, error) {
	if end.Before(start) {
		return nil, mapError(apperrors.NewFieldError("end", "must not be before start"))
	}
	all, err := e.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(all))
	for _, order := range all {
		if !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			out = append(out, order)
		}
	}
	return out, nil
}

// Today returns the orders placed on the current calendar day.
func (e *Engine) Today(ctx context.Context) ([]*domain.Order, error) {
	start, end := e.todayBounds()
	return e.ListByDateRange(ctx, start, end)
}

// Statistics aggregates count and revenue over the whole history and over today.
func (e *Engine) Statistics(ctx context.Context) (types.Statistics, error) {
	all, err := e.orders.List(ctx)
	if err != nil {
		return types.Statistics{}, err
	}
	start, end := e.todayBounds()
	stats := types.Statistics{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TodayRevenue:      decimal.Zero,
	}
	for _, order := range all {
		stats.Count++
		stats.TotalRevenue = stats.TotalRevenue.Add(order.Total)
		if !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			stats.TodayCount++
			stats.TodayRevenue = stats.TodayRevenue.Add(order.Total)
		}
	}
	if stats.Count > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.DivRound(decimal.NewFromInt(int64(stats.Count)), 2)
	}
	return stats, nil
}

func (e *Engine) todayBounds() (time.Time, time.Time) {
	now := e.now().In(e.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.location)
	return start, start.AddDate(0, 0, 1)
}

func (e *Engine) HasOrdersForCustomer(ctx context.Context, customerID int64) (bool, error) {
	return e.orders.ExistsForCustomer(ctx, customerID)
}

// GuardCustomerRemoval runs remove only while no order references the customer.
func (e *Engine) GuardCustomerRemoval(ctx context.Context, customerID int64, remove func(context.Context) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	exists, err := e.orders.ExistsForCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Wrap(apperrors.ErrReferentialConflict, "customer", customerID, "cannot delete customer with existing orders")
	}
	return remove(ctx)
}

// Delete removes an order for administrative correction. Stock is not returned.
func (e *Engine) Delete(ctx context.Context, id int64, confirmer confirm.Confirmer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !confirm.Approved(ctx, confirmer, fmt.Sprintf("Delete order #%d (total %s)?", order.ID, order.Total.StringFixed(2))) {
		return apperrors.ErrCancelled
	}
	return e.orders.Delete(ctx, id)
}

// ReplaceAll validates every imported order, including its totals, and swaps the history.
func (e *Engine) ReplaceAll(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if order == nil {
			continue
		}
		if err := order.Validate(); err != nil {
			return mapError(fmt.Errorf("order %d: %w", order.ID, err))
		}
		if err := order.VerifyTotals(); err != nil {
			return mapError(fmt.Errorf("order %d: %w", order.ID, err))
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return mapError(e.orders.ReplaceAll(ctx, orders))
}

var (
	_ ports.Service                 = (*Engine)(nil)
	_ customerports.OrderReferences = (*Engine)(nil)
)
