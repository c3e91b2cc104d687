package core

// validation.go defines the error kinds returned by catalog, registry and ledger mutators.
//
// Every mutator either succeeds and changes state, or fails with one of these
// errors and leaves state untouched:
//   - ValidationError: empty required field, non-positive quantity, blank rename
//   - DuplicateCodeError: product code collision (matches ErrDuplicateCode)
//   - UnknownProductError: order for a product not in the catalog (matches ErrUnknownProduct)

import (
	"errors"
	"fmt"
	"strings"
)

// Field names used in ValidationError.Field.
const (
	FieldName      = "name"
	FieldCode      = "code"
	FieldUnit      = "unit"
	FieldQuantity  = "quantity"
	FieldUserName  = "user_name"
	FieldUserIndex = "user_index"
)

var (
	// ErrDuplicateCode matches any *DuplicateCodeError via errors.Is.
	ErrDuplicateCode = errors.New("duplicate product code")

	// ErrUnknownProduct matches any *UnknownProductError via errors.Is.
	ErrUnknownProduct = errors.New("unknown product")
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name, one of the Field* constants
	Value   string // The rejected value
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// DuplicateCodeError is returned when a product code is already in the catalog.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("duplicate product code %q", e.Code)
}

func (e *DuplicateCodeError) Is(target error) bool {
	return target == ErrDuplicateCode
}

// UnknownProductError is returned when an order references a product that is not in the catalog.
type UnknownProductError struct {
	ID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q", e.ID)
}

func (e *UnknownProductError) Is(target error) bool {
	return target == ErrUnknownProduct
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// requireText trims s and returns a ValidationError if nothing is left.
func requireText(field, s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &ValidationError{
			Field:   field,
			Value:   s,
			Message: "required field is empty",
		}
	}
	return trimmed, nil
}
