package types

import "github.com/shopspring/decimal"

// AddItemInput carries the fields required to create a catalog item.
type AddItemInput struct {
	Code  string
	Name  string
	Price decimal.Decimal
	Stock int
}

// ItemPatch lists the descriptive fields to change on an item. Stock is changed only by
// reservation and restock.
type ItemPatch struct {
	Code  *string
	Name  *string
	Price *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Code == nil && p.Name == nil && p.Price == nil
}
