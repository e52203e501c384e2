package types

import "github.com/shopspring/decimal"

// CartLine is one caller-side selection.
type CartLine struct {
	ItemID   int64
	Quantity int
}

// PlaceOrderInput is the candidate order assembled by the caller. WalkIn places the order without
// a registered customer and is honoured only when the engine allows walk-in sales.
type PlaceOrderInput struct {
	CustomerID *int64
	WalkIn     bool
	Lines      []CartLine
}

// ForCustomer builds an input billed to the given customer.
func ForCustomer(customerID int64, lines ...CartLine) PlaceOrderInput {
	return PlaceOrderInput{CustomerID: &customerID, Lines: lines}
}

// Statistics summarizes the order history.
type Statistics struct {
	Count             int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	TodayCount        int
	TodayRevenue      decimal.Decimal
}
