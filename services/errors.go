package services

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternal           = errors.New("internal server error")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrValidation         = errors.New("validation error")
)

// ValidationError carries field-level messages for a rejected payload.
// It matches ErrValidation under errors.Is so route handlers can map it to 400.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
