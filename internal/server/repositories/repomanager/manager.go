// Package repomanager owns the storage connection and vends the repositories
// built on it. The backend is chosen by config: MongoDB or PostgreSQL.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	// RunMigrations brings the schema (tables, indexes) up to date.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New connects to the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := connectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		return NewMongoRepositoryManager(client, cfg.MongoDatabase), nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return NewPostgresRepositoryManager(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
