package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds shared by every bounded context. Detailed errors wrap exactly one of these.
var (
	ErrInvalidInput        = stderrors.New("invalid input")
	ErrNotFound            = stderrors.New("not found")
	ErrDuplicateContact    = stderrors.New("duplicate contact")
	ErrDuplicateCode       = stderrors.New("duplicate item code")
	ErrReferentialConflict = stderrors.New("referential conflict")
	ErrMissingCustomer     = stderrors.New("customer is required for order")
	ErrInvalidCustomer     = stderrors.New("invalid customer")
	ErrEmptyOrder          = stderrors.New("order must contain at least one item")
	ErrInvalidItem         = stderrors.New("invalid item")
	ErrInsufficientStock   = stderrors.New("insufficient stock")
	ErrCancelled           = stderrors.New("operation cancelled")
)

// FieldError reports a field that failed a validation rule.
type FieldError struct {
	Field   string
	Message string
}

// NewFieldError builds an InvalidInput error for a single field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// LookupError names the entity and identifier a failed lookup or constraint refers to.
type LookupError struct {
	Kind     error
	Resource string
	ID       any
	Message  string
}

// NotFound builds a NotFound error for the given resource.
func NotFound(resource string, id any) *LookupError {
	return &LookupError{Kind: ErrNotFound, Resource: resource, ID: id, Message: fmt.Sprintf("%s not found", resource)}
}

// Wrap attaches the resource context to an arbitrary kind.
func Wrap(kind error, resource string, id any, message string) *LookupError {
	return &LookupError{Kind: kind, Resource: resource, ID: id, Message: message}
}

func (e *LookupError) Error() string {
	if e.ID == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%s %v)", e.Message, e.Resource, e.ID)
}

func (e *LookupError) Unwrap() error { return e.Kind }

// StockError names the line item that cannot be covered by current stock.
type StockError struct {
	ItemID    int64
	Code      string
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s): requested %d, available %d", e.Name, e.Code, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// Is reports whether err carries the given kind. It mirrors errors.Is so callers only import one package.
func Is(err, kind error) bool {
	return stderrors.Is(err, kind)
}

// As mirrors errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
