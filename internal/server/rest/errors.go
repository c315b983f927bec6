package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/labstack/echo/v4"
)

type response struct {
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user,omitempty"`
	Success bool               `json:"success"`
}

// Operation names, also used for the generic 500 message.
const (
	opRegister = "registering user"
	opLogin    = "logging in user"
	opLogout   = "logging out user"
	opUpdate   = "updating profile"
)

// statusFor maps a service error to a status code and a client-safe message.
// Errors outside the known kinds become 500 with a generic message.
func statusFor(op string, err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrMissingFields):
		return http.StatusBadRequest, "All fields are required"
	case errors.Is(err, common.ErrInvalidRole):
		return http.StatusBadRequest, "Role must be student or recruiter"
	case errors.Is(err, common.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password is too long"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "You do not have necessary role to access this resource"
	default:
		return http.StatusInternalServerError, "Server Error " + op
	}
}

func (s *HTTPServer) fail(c echo.Context, op string, err error) error {
	status, msg := statusFor(op, err)
	ctx := c.Request().Context()
	if status == http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "op", op, "error", err)
	} else {
		s.logger.Debug(ctx, "request rejected", "op", op, "status", status, "error", err)
	}
	return c.JSON(status, response{Message: msg})
}
