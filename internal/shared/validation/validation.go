// Package validation holds the field-level rules shared by customers and catalog items.
// Every function returns nil on success or a *errors.FieldError describing the failure.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s-]{2,50}$`)
	contactPattern  = regexp.MustCompile(`^[\d\s\-+()]{7,20}$`)
	itemCodePattern = regexp.MustCompile(`^[A-Z0-9-]{3,20}$`)
	pricePattern    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	quantityPattern = regexp.MustCompile(`^\d+$`)
	addressPattern  = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-]{0,200}$`)
)

// ValidateName checks a person or product name under the given field label.
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return apperrors.NewFieldError(field, "must be at least 2 characters long")
	}
	if !namePattern.MatchString(name) {
		return apperrors.NewFieldError(field, "contains invalid characters")
	}
	return nil
}

// ValidateContact checks a phone-style contact identifier.
func ValidateContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if len(contact) < 7 {
		return apperrors.NewFieldError("contact", "must be at least 7 characters")
	}
	if !contactPattern.MatchString(contact) {
		return apperrors.NewFieldError("contact", "invalid phone number format")
	}
	return nil
}

// NormalizeItemCode trims and uppercases an item code.
func NormalizeItemCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateItemCode checks an item code after normalization.
func ValidateItemCode(code string) error {
	if len(strings.TrimSpace(code)) < 3 {
		return apperrors.NewFieldError("code", "must be at least 3 characters")
	}
	if !itemCodePattern.MatchString(NormalizeItemCode(code)) {
		return apperrors.NewFieldError("code", "must contain only letters, numbers, and hyphens (max 20)")
	}
	return nil
}

// ValidatePrice accepts non-negative amounts with at most two fractional digits.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperrors.NewFieldError("price", "must not be negative")
	}
	if !price.Equal(price.Truncate(2)) {
		return apperrors.NewFieldError("price", "format is invalid (max 2 decimal places)")
	}
	return nil
}

// ParsePrice converts user text into a validated price.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if !pricePattern.MatchString(raw) {
		return decimal.Zero, apperrors.NewFieldError("price", "must be a non-negative number with at most 2 decimal places")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.NewFieldError("price", "is not a number")
	}
	return price, nil
}

// ValidateQuantity accepts non-negative whole quantities.
func ValidateQuantity(qty int) error {
	if qty < 0 {
		return apperrors.NewFieldError("quantity", "must be a non-negative integer")
	}
	return nil
}

// ParseQuantity converts user text into a validated quantity.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if !quantityPattern.MatchString(raw) {
		return 0, apperrors.NewFieldError("quantity", "must be a whole number")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewFieldError("quantity", "is out of range")
	}
	return qty, nil
}

// ValidateAddress checks the optional address field; empty input passes.
func ValidateAddress(address string) error {
	if address == "" {
		return nil
	}
	if !addressPattern.MatchString(address) {
		return apperrors.NewFieldError("address", "contains invalid characters")
	}
	return nil
}
