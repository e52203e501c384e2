package domain

import (
	"strings"
	"time"

	"github.com/Apurer/go-pos-core/internal/shared/validation"
)

// Customer is a billed party of the shop.
type Customer struct {
	ID        int64
	Name      string
	Contact   string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer ensuring every field invariant.
func NewCustomer(name, contact, address string) (*Customer, error) {
	c := &Customer{}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.ChangeContact(contact); err != nil {
		return nil, err
	}
	if err := c.ChangeAddress(address); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename trims and validates the display name.
func (c *Customer) Rename(name string) error {
	if err := validation.ValidateName("name", name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	return nil
}

// ChangeContact trims and validates the contact identifier.
func (c *Customer) ChangeContact(contact string) error {
	if err := validation.ValidateContact(contact); err != nil {
		return err
	}
	c.Contact = strings.TrimSpace(contact)
	return nil
}

// ChangeAddress sets the optional address. An empty string clears it.
func (c *Customer) ChangeAddress(address string) error {
	address = strings.TrimSpace(address)
	if err := validation.ValidateAddress(address); err != nil {
		return err
	}
	c.Address = address
	return nil
}

// Matches reports whether the query is a case-insensitive substring of name, contact or address.
func (c *Customer) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Contact), q) ||
		strings.Contains(strings.ToLower(c.Address), q)
}

// Validate re-applies core invariants, e.g. for imported records.
func (c *Customer) Validate() error {
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	if err := c.ChangeContact(c.Contact); err != nil {
		return err
	}
	return c.ChangeAddress(c.Address)
}

// Clone returns an independent copy.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
