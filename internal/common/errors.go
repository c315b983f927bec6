// Package common defines sentinel errors shared by the repositories, services
// and the HTTP layer. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInternal     = errors.New("internal error")

	// Validation details. All wrap ErrorValidation.
	ErrMissingFields   = fmt.Errorf("%w: all fields are required", ErrorValidation)
	ErrInvalidRole     = fmt.Errorf("%w: unknown role", ErrorValidation)
	ErrPasswordTooLong = fmt.Errorf("%w: password is too long", ErrorValidation)

	// Session token errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrMissingSigningKey  = errors.New("session signing key is not configured")
	ErrUploadNotAvailable = errors.New("upload storage is not configured")
)
