package segmentation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilterField = errors.New("invalid filter field")
	ErrInvalidFilterShape = errors.New("invalid filter shape")
	ErrInvalidRange       = errors.New("invalid range")
	ErrDataUnavailable    = errors.New("client data unavailable")
	ErrStrategyNotFound   = errors.New("strategy not found")
)

// FilterError reports which filter of a request failed validation.
type FilterError struct {
	Index int
	Field string
	Err   error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filters[%d] (%s): %v", e.Index, e.Field, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}

// Code returns the taxonomy name of a validation error, or "" when err is
// not one.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFilterField):
		return "InvalidFilterField"
	case errors.Is(err, ErrInvalidFilterShape):
		return "InvalidFilterShape"
	case errors.Is(err, ErrInvalidRange):
		return "InvalidRange"
	case errors.Is(err, ErrDataUnavailable):
		return "DataUnavailable"
	default:
		return ""
	}
}

// IsValidation reports whether err was caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidFilterField) ||
		errors.Is(err, ErrInvalidFilterShape) ||
		errors.Is(err, ErrInvalidRange)
}
