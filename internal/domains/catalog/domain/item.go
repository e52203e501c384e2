package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
	"github.com/Apurer/go-pos-core/internal/shared/validation"
)

// Item is a sellable product with its on-hand stock.
type Item struct {
	ID        int64
	Code      string
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reservation asks for a quantity of one item.
type Reservation struct {
	ItemID   int64
	Quantity int
}

// NewItem validates and builds an item.
func NewItem(code, name string, price decimal.Decimal, stock int) (*Item, error) {
	item := &Item{}
	if err := item.Recode(code); err != nil {
		return nil, err
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.Reprice(price); err != nil {
		return nil, err
	}
	if err := validation.ValidateQuantity(stock); err != nil {
		return nil, apperrors.NewFieldError("stock", "must be a non-negative integer")
	}
	item.Stock = stock
	return item, nil
}

// Recode validates the code and stores it uppercased.
func (i *Item) Recode(code string) error {
	if err := validation.ValidateItemCode(code); err != nil {
		return err
	}
	i.Code = validation.NormalizeItemCode(code)
	return nil
}

// Rename validates the product name.
func (i *Item) Rename(name string) error {
	if err := validation.ValidateName("name", name); err != nil {
		return err
	}
	i.Name = strings.TrimSpace(name)
	return nil
}

// Reprice validates the unit price.
func (i *Item) Reprice(price decimal.Decimal) error {
	if err := validation.ValidatePrice(price); err != nil {
		return err
	}
	i.Price = price
	return nil
}

// Reserve decrements stock when enough is on hand.
func (i *Item) Reserve(qty int) error {
	if qty < 0 {
		return apperrors.NewFieldError("quantity", "quantity to reserve must not be negative")
	}
	if qty > i.Stock {
		return i.shortage(qty)
	}
	i.Stock -= qty
	return nil
}

// Restock increments stock.
func (i *Item) Restock(qty int) error {
	if qty <= 0 {
		return apperrors.NewFieldError("quantity", "quantity to add must be positive")
	}
	if qty > math.MaxInt-i.Stock {
		return apperrors.NewFieldError("quantity", "stock would exceed the largest storable quantity")
	}
	i.Stock += qty
	return nil
}

// CanCoverMore reports whether qty more units are on hand once claimed units are set aside,
// returning the shortage otherwise. claimed must not exceed Stock.
func (i *Item) CanCoverMore(claimed, qty int) error {
	if qty > i.Stock-claimed {
		requested := math.MaxInt
		if qty <= math.MaxInt-claimed {
			requested = claimed + qty
		}
		return i.shortage(requested)
	}
	return nil
}

func (i *Item) shortage(qty int) error {
	return &apperrors.StockError{ItemID: i.ID, Code: i.Code, Name: i.Name, Requested: qty, Available: i.Stock}
}

// InStock reports whether at least one unit is on hand.
func (i *Item) InStock() bool { return i.Stock > 0 }

// IsLowStock reports items that are still available but below the threshold.
func (i *Item) IsLowStock(threshold int) bool {
	return i.Stock > 0 && i.Stock < threshold
}

// Matches reports whether the query is a case-insensitive substring of name or code.
func (i *Item) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.Name), q) || strings.Contains(strings.ToLower(i.Code), q)
}

// Validate re-applies invariants, e.g. for imported records.
func (i *Item) Validate() error {
	if err := i.Recode(i.Code); err != nil {
		return err
	}
	if err := i.Rename(i.Name); err != nil {
		return err
	}
	if err := i.Reprice(i.Price); err != nil {
		return err
	}
	if i.Stock < 0 {
		return apperrors.NewFieldError("stock", "must be a non-negative integer")
	}
	return nil
}

// Clone returns an independent copy.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
