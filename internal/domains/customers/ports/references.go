package ports

import "context"

// OrderReferences guards customer removal against existing orders.
type OrderReferences interface {
	// GuardCustomerRemoval runs remove only when no order references the customer. The check and
	// remove happen without an order being placed in between.
	GuardCustomerRemoval(ctx context.Context, customerID int64, remove func(context.Context) error) error
}

// NoOrderReferences is used when no order history exists, e.g. in isolated tests.
var NoOrderReferences OrderReferences = noOrderReferences{}

type noOrderReferences struct{}

func (noOrderReferences) GuardCustomerRemoval(ctx context.Context, _ int64, remove func(context.Context) error) error {
	return remove(ctx)
}
