package application

import (
	"errors"
	"fmt"

	apperrors "github.com/Apurer/go-pos-core/internal/shared/errors"
)

// ErrInvalidInput prefixes validation failures raised by customer use cases.
var ErrInvalidInput = errors.New("invalid customer input")

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
