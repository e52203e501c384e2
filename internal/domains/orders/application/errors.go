package application

import (
	"errors"
	"fmt"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// ErrInvalidInput prefixes validation failures raised by order use cases.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var field *apperrors.FieldError
	if errors.As(err, &field) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// lookupAs re-labels a NotFound from a collaborator store as the order-placement kind.
func lookupAs(err error, kind error, resource string, id int64, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Wrap(kind, resource, id, message)
	}
	return err
}
