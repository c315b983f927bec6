// Command useradd creates an account in the configured store.
//
//	useradd -k mongo -fullname "Jo" -email jo@x.com -phone 555 -role student
//
// Missing fields are prompted for; the password is always read from the
// terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/auth"
	"github.com/dmitrijs2005/jobportal/internal/server/cli"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	rm, err := repomanager.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer rm.Close(context.Background())

	if err := rm.RunMigrations(ctx); err != nil {
		return err
	}

	us := services.NewUserService(rm,
		auth.NewBcryptHasher(cfg.PasswordHashCost),
		auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.SessionTokenValidityDuration),
		logger)

	return cli.NewUserAdd(us, os.Stdin, os.Stdout, int(os.Stdin.Fd())).Run(ctx, os.Args[1:])
}
