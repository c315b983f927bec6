// Package rest exposes the account service over HTTP using echo.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/models"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"github.com/dmitrijs2005/jobportal/internal/server/uploads"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	// BasePath prefixes every account route.
	BasePath = "/api/v1/user"

	shutdownTimeout = 10 * time.Second
	maxBodySize     = "10M"
)

// UserService is the account lifecycle as seen by the transport.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.PublicUser, error)
	Login(ctx context.Context, in services.LoginInput) (*services.LoginResult, error)
	Logout(ctx context.Context) auth.CookieDirective
	UpdateProfile(ctx context.Context, userID string, in services.UpdateProfileInput) (*models.PublicUser, error)
}

// TokenParser resolves a session token to a user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Address        string
	AllowedOrigins []string
	// AuthRateLimit is requests per second per client IP on register and
	// login. Zero disables the limiter.
	AuthRateLimit float64
}

type HTTPServer struct {
	opts     Options
	users    UserService
	tokens   TokenParser
	uploader uploads.Uploader
	ready    Pinger
	logger   logging.Logger
	echo     *echo.Echo
}

func NewHTTPServer(opts Options, l logging.Logger, us UserService, tokens TokenParser, up uploads.Uploader, ready Pinger) *HTTPServer {
	if up == nil {
		up = uploads.Disabled{}
	}

	s := &HTTPServer{
		opts:     opts,
		users:    us,
		tokens:   tokens,
		uploader: up,
		ready:    ready,
		logger:   l.With("module", "http_server"),
	}
	s.echo = s.routes()
	return s
}

// Handler returns the configured router.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

func (s *HTTPServer) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	}))
	if len(s.opts.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     s.opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowCredentials: true,
		}))
	}

	e.GET("/health", s.health)
	e.GET("/ready", s.readiness)

	g := e.Group(BasePath)

	var limit []echo.MiddlewareFunc
	if s.opts.AuthRateLimit > 0 {
		limit = append(limit, middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStore(rate.Limit(s.opts.AuthRateLimit)),
			DenyHandler: func(c echo.Context, _ string, _ error) error {
				return c.JSON(http.StatusTooManyRequests, response{Message: "Too many requests"})
			},
		}))
	}

	g.POST("/register", s.register, limit...)
	g.POST("/login", s.login, limit...)
	g.GET("/logout", s.logout)
	g.POST("/profile/update", s.updateProfile, s.authenticate, middleware.BodyLimit(maxBodySize))

	return e
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		errCh <- s.echo.Start(s.opts.Address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *HTTPServer) readiness(c echo.Context) error {
	if s.ready == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	}
	if err := s.ready.Ping(c.Request().Context()); err != nil {
		s.logger.Warn(c.Request().Context(), "store unreachable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "store unreachable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
