package model

import (
	"errors"
	"fmt"
)

// ErrValidation marks field-constraint violations raised by Validate methods.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
