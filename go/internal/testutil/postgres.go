// Package testutil starts throwaway Postgres containers for repository tests.
package testutil

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mcdev12/bowlpool/go/internal/db"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "bowlpool"
	dbUser     = "pooluser"
	dbPassword = "secret"
)

// Postgres is a running container with the schema applied.
type Postgres struct {
	container *postgres.PostgresContainer
	DB        *sql.DB
}

// StartPostgres starts a container and applies the schema.
// A missing container provider is reported as an error rather than a panic.
func StartPostgres(ctx context.Context) (pg *Postgres, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container provider unavailable: %v", r)
		}
	}()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}
	pg = &Postgres{container: container}

	// the container is not configured for TLS
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pg.Shutdown()
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pg.DB, err = sql.Open("postgres", connStr)
	if err != nil {
		pg.Shutdown()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := pg.DB.PingContext(ctx); err != nil {
		pg.Shutdown()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.CreateSchema(ctx, pg.DB); err != nil {
		pg.Shutdown()
		return nil, err
	}
	return pg, nil
}

// Shutdown closes the connection pool and terminates the container.
func (p *Postgres) Shutdown() {
	if p.DB != nil {
		_ = p.DB.Close()
	}
	if err := p.container.Terminate(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to terminate postgres container")
	}
}

// RunWithPostgres is a TestMain body. It hands the database to setDB when a
// container could be started and runs the tests either way; repository tests
// skip themselves through RequireDB when no database is available.
func RunWithPostgres(m *testing.M, setDB func(*sql.DB)) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pg, err := StartPostgres(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("postgres unavailable, repository tests will be skipped")
		os.Exit(m.Run())
	}

	setDB(pg.DB)
	code := m.Run()
	pg.Shutdown()
	os.Exit(code)
}

// RequireDB skips the test when no database is available and empties every table otherwise.
func RequireDB(t *testing.T, sqlDB *sql.DB) *sql.DB {
	t.Helper()
	if sqlDB == nil {
		t.Skip("postgres container not available")
	}
	_, err := sqlDB.Exec(`TRUNCATE picks, contests, participants, round_locks, settings, sync_runs`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return sqlDB
}
