package types

// AddCustomerInput carries the fields required to register a customer.
type AddCustomerInput struct {
	Name    string
	Contact string
	Address string
}

// CustomerPatch lists the fields to change on an existing customer. Nil fields are left untouched;
// a non-nil empty Address clears the address.
type CustomerPatch struct {
	Name    *string
	Contact *string
	Address *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Contact == nil && p.Address == nil
}
