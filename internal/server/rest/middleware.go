package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// authenticate resolves the session cookie to a user id and stores it on the
// echo context under userIDKey.
func (s *HTTPServer) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, response{Message: "User not authenticated"})
		}

		userID, err := s.tokens.Parse(cookie.Value)
		if err != nil {
			msg := "Invalid token"
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				msg = "Session expired"
			case errors.Is(err, common.ErrMissingSigningKey):
				s.logger.Error(c.Request().Context(), "cannot verify session", "error", err)
				return c.JSON(http.StatusInternalServerError, response{Message: "Server Error " + opUpdate})
			}
			return c.JSON(http.StatusUnauthorized, response{Message: msg})
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func userIDFrom(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
