// Package server wires configuration, storage, the account service and the
// HTTP transport together and runs them until the process is signaled.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/rest"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"github.com/dmitrijs2005/jobportal/internal/server/uploads"
)

const closeTimeout = 5 * time.Second

var (
	newRepositoryManager           = repomanager.New
	logOutput            io.Writer = os.Stdout
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       repomanager.RepositoryManager
	userService *services.UserService
	issuer      *auth.TokenIssuer
	uploader    uploads.Uploader
}

// NewApp connects to storage, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	if c.SecretKey == "" {
		logger.Warn(ctx, "session signing key is empty; logins will fail until it is configured")
	}

	rm, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var up uploads.Uploader = uploads.Disabled{}
	if c.UploadsEnabled() {
		up = uploads.NewS3Uploader(uploads.S3Options{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		}, logger)
	}

	issuer := auth.NewTokenIssuer([]byte(c.SecretKey), c.SessionTokenValidityDuration).
		WithSecureCookies(c.CookieSecure)
	us := services.NewUserService(rm, auth.NewBcryptHasher(c.PasswordHashCost), issuer, logger)

	logger.Info(ctx, "App initialized", "storage", c.StorageDriver, "uploads", c.UploadsEnabled())

	return &App{
		config:      c,
		logger:      logger,
		repos:       rm,
		userService: us,
		issuer:      issuer,
		uploader:    up,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() *rest.HTTPServer {
	return rest.NewHTTPServer(rest.Options{
		Address:        app.config.EndpointAddrHTTP,
		AllowedOrigins: app.config.AllowedOrigins,
		AuthRateLimit:  app.config.AuthRateLimit,
	}, app.logger, app.userService, app.issuer, app.uploader, app.repos)
}

// Run serves HTTP until ctx is canceled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	runErr := app.newHTTPServer().Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server failed", "error", runErr)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
