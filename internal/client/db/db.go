// Package db wires the client's local SQLite mirror: connection, schema
// migrations (via goose) and repository construction.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/pastelog/pastelog/internal/client/migrations"
	"github.com/pastelog/pastelog/internal/client/repositories/logs"
)

// Repositories bundles the mirror repositories backed by one database handle.
type Repositories struct {
	Logs logs.Repository
	DB   *sql.DB
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the mirror database at dsn, applies
// migrations and returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Logs: logs.NewSQLiteRepository(db),
		DB:   db,
	}, nil
}
