package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return db, mock
}

func TestPostgresManager_Users(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)
	u := m.Users()
	require.NotNil(t, u)
	_, ok := u.(*users.PostgresRepository)
	assert.True(t, ok)
}

func TestPostgresManager_RunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		assert.Same(t, db, got)
		gotDir = dir
		return nil
	}
	require.NoError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, NewPostgresRepositoryManager(db).RunMigrations(context.Background()), "boom")
}

func TestPostgresManager_PingClose(t *testing.T) {
	db, mock := newDB(t)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))
	mock.ExpectClose()

	m := NewPostgresRepositoryManager(db)
	assert.NoError(t, m.Ping(context.Background()))
	assert.EqualError(t, m.Ping(context.Background()), "down")
	assert.NoError(t, m.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	db, mock := newDB(t)
	mock.ExpectPing()

	var gotDriver, gotDSN string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return db, nil
	}

	got, err := openPostgres(context.Background(), "postgres://x")
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, "pgx", gotDriver)
	assert.Equal(t, "postgres://x", gotDSN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_PingFails(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	db, mock := newDB(t)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

	_, err := openPostgres(context.Background(), "postgres://x")
	assert.EqualError(t, err, "refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_Postgres(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })

	db, mock := newDB(t)
	defer db.Close()
	mock.ExpectPing()
	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

	cfg := &config.Config{StorageDriver: config.StoragePostgres, DatabaseDSN: "postgres://x"}
	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "sqlite"})
	assert.EqualError(t, err, `unknown storage driver "sqlite"`)
}
