package util

import (
	"errors"
	"fmt"

	"studyhub_backend/internal/model"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = model.ErrValidation
	ErrStorageConflict    = errors.New("submitted too fast, please try again")
	ErrEmptyExam          = errors.New("interactive exam has no questions")
	ErrEmailRegistered    = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadySubscribed  = errors.New("already subscribed")
)

// Invalid builds a validation error whose message is passed through to the client.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
