package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrSuperseded       = errors.New("operation superseded by a newer request")
	ErrBusy             = errors.New("another operation is still pending")
	ErrSimulatedFailure = errors.New("simulated failure")
)

// ValidationError reports a rejected field. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// translateValidation turns the first validator failure into a ValidationError.
func translateValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := toSnakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return newValidationError(field, "is required")
	case "gte":
		return newValidationError(field, "must be %s or greater", fe.Param())
	case "lte":
		return newValidationError(field, "must be %s or less", fe.Param())
	case "gtefield":
		return newValidationError(field, "must be greater than or equal to %s", toSnakeCase(fe.Param()))
	case "oneof":
		return newValidationError(field, "must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return newValidationError(field, "must not exceed %s", fe.Param())
	default:
		return newValidationError(field, "failed %s validation", fe.Tag())
	}
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
