package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrorAlreadyExists, ErrorValidation, ErrorUnauthorized,
		ErrorForbidden, ErrorInternal, ErrInvalidToken, ErrTokenExpired,
		ErrMissingSigningKey, ErrUploadNotAvailable,
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.Falsef(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}

func TestValidationDetails(t *testing.T) {
	assert.ErrorIs(t, ErrMissingFields, ErrorValidation)
	assert.ErrorIs(t, ErrInvalidRole, ErrorValidation)
	assert.ErrorIs(t, ErrPasswordTooLong, ErrorValidation)
	assert.NotErrorIs(t, ErrMissingFields, ErrInvalidRole)
	assert.NotErrorIs(t, ErrorValidation, ErrMissingFields)
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("finding user: %w", ErrorNotFound)
	assert.ErrorIs(t, wrapped, ErrorNotFound)
	assert.NotErrorIs(t, wrapped, ErrorAlreadyExists)
}
