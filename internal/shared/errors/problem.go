// Package errors defines the error taxonomy of the POS core and a presentation-neutral
// Problem shape, modelled on RFC 7807 Problem Details, that callers render to users.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Problem is the user-facing description of a failed operation.
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p Problem) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p Problem) WithDetail(detail string) Problem {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p Problem) WithExtension(key string, value any) Problem {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem types as URI references.
const (
	TypeValidation          = "/problems/validation-error"
	TypeNotFound            = "/problems/not-found"
	TypeConflict            = "/problems/conflict"
	TypeReferentialConflict = "/problems/referential-conflict"
	TypeOrderRejected       = "/problems/order-rejected"
	TypeInsufficientStock   = "/problems/insufficient-stock"
	TypeCancelled           = "/problems/cancelled"
	TypeInternal            = "/problems/internal-error"
)

var (
	problemValidation = Problem{Type: TypeValidation, Title: "Validation Error"}
	problemNotFound   = Problem{Type: TypeNotFound, Title: "Resource Not Found"}
	problemConflict   = Problem{Type: TypeConflict, Title: "Conflict"}
	problemReference  = Problem{Type: TypeReferentialConflict, Title: "Resource In Use"}
	problemRejected   = Problem{Type: TypeOrderRejected, Title: "Order Rejected"}
	problemStock      = Problem{Type: TypeInsufficientStock, Title: "Insufficient Stock"}
	problemCancelled  = Problem{Type: TypeCancelled, Title: "Cancelled"}
	problemInternal   = Problem{Type: TypeInternal, Title: "Internal Error"}
)

// Describe converts any error returned by the core into a Problem.
func Describe(err error) Problem {
	if err == nil {
		return Problem{}
	}
	var problem Problem
	if stderrors.As(err, &problem) {
		return problem
	}

	var field *FieldError
	if stderrors.As(err, &field) {
		return problemValidation.
			WithDetail(field.Error()).
			WithExtension("fields", map[string]string{field.Field: field.Message})
	}
	var stock *StockError
	if stderrors.As(err, &stock) {
		return problemStock.
			WithDetail(stock.Error()).
			WithExtension("itemId", stock.ItemID).
			WithExtension("requested", stock.Requested).
			WithExtension("available", stock.Available)
	}

	var base Problem
	switch {
	case stderrors.Is(err, ErrInvalidInput):
		base = problemValidation
	case stderrors.Is(err, ErrNotFound):
		base = problemNotFound
	case stderrors.Is(err, ErrDuplicateContact), stderrors.Is(err, ErrDuplicateCode):
		base = problemConflict
	case stderrors.Is(err, ErrReferentialConflict):
		base = problemReference
	case stderrors.Is(err, ErrMissingCustomer),
		stderrors.Is(err, ErrInvalidCustomer),
		stderrors.Is(err, ErrEmptyOrder),
		stderrors.Is(err, ErrInvalidItem):
		base = problemRejected
	case stderrors.Is(err, ErrInsufficientStock):
		base = problemStock
	case stderrors.Is(err, ErrCancelled):
		base = problemCancelled
	default:
		base = problemInternal
	}
	problem = base.WithDetail(err.Error())
	var lookup *LookupError
	if stderrors.As(err, &lookup) && lookup.ID != nil {
		problem = problem.
			WithExtension("resourceType", lookup.Resource).
			WithExtension("identifier", lookup.ID)
	}
	return problem
}
