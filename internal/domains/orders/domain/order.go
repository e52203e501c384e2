package domain

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// WalkInCustomerID is stored on orders placed without a registered customer.
const WalkInCustomerID int64 = 0

// TaxRate is the fixed sales tax applied to every order subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// Line is an immutable snapshot of one item at the time the order was placed.
type Line struct {
	ItemID    int64
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the committed sale aggregate.
type Order struct {
	ID         int64
	CustomerID int64
	CreatedAt  time.Time
	Lines      []Line
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Status     Status
}

// Totals is the pricing breakdown of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Price computes subtotal, tax rounded to cents, and total.
func Price(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// NewOrder prices the lines and builds a paid order.
func NewOrder(customerID int64, lines []Line, createdAt time.Time) (*Order, error) {
	order := &Order{
		CustomerID: customerID,
		CreatedAt:  createdAt,
		Lines:      append([]Line(nil), lines...),
		Status:     StatusPaid,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	totals := Price(order.Lines)
	order.Subtotal, order.Tax, order.Total = totals.Subtotal, totals.Tax, totals.Total
	return order, nil
}

// Validate enforces line and status invariants.
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return apperrors.ErrEmptyOrder
	}
	if o.CustomerID < 0 {
		return apperrors.NewFieldError("customerId", "must not be negative")
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return apperrors.NewFieldError("quantity", "must be greater than zero")
		}
		if line.UnitPrice.IsNegative() {
			return apperrors.NewFieldError("unitPrice", "must not be negative")
		}
	}
	if !isValidStatus(o.Status) {
		return apperrors.NewFieldError("status", "order status is invalid")
	}
	return nil
}

// VerifyTotals reports whether the stored amounts match the lines, e.g. for imported records.
func (o *Order) VerifyTotals() error {
	totals := Price(o.Lines)
	if !o.Subtotal.Equal(totals.Subtotal) || !o.Tax.Equal(totals.Tax) || !o.Total.Equal(totals.Total) {
		return apperrors.NewFieldError("total", "does not match order lines")
	}
	return nil
}

// IsWalkIn reports whether the order has no registered customer.
func (o *Order) IsWalkIn() bool { return o.CustomerID == WalkInCustomerID }

// ItemCount sums quantities across lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, line := range o.Lines {
		n += line.Quantity
	}
	return n
}

// Clone returns an independent copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusPaid:
		return true
	default:
		return false
	}
}
