package booking

import (
	"errors"
	"fmt"
)

var (
	ErrClosed              = errors.New("booking dialog is not open")
	ErrStage               = errors.New("action not allowed in current stage")
	ErrEmptySelection      = errors.New("select at least one ticket")
	ErrTierUnavailable     = errors.New("tier is not available for selection")
	ErrDispatchInFlight    = errors.New("confirmation dispatch already in flight")
	ErrDispatchUnavailable = errors.New("no confirmation dispatcher configured")
)

// FieldErrors maps a form field to its single current error message.
type FieldErrors map[Field]string

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for field, msg := range fe {
		out[field] = msg
	}

	return out
}

// ValidationError carries the full field-error mapping of a failed
// proceed/confirm attempt.
type ValidationError struct {
	fields FieldErrors
}

func newValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{fields: fields}
}

func IsValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError

	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%+v", e.fields)
}

func (e *ValidationError) Fields() FieldErrors {
	return e.fields.Clone()
}

func (e *ValidationError) FieldCount() int {
	return len(e.fields)
}
