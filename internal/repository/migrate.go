package repository

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies the embedded schema migrations for the configured driver.
func (r *Repository) Migrate(ctx context.Context) error {
	dialect, dir, err := r.migrationSource()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, r.db.DB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

func (r *Repository) migrationSource() (dialect, dir string, err error) {
	switch r.cfg.Driver {
	case DriverSQLServer:
		return "mssql", "migrations/sqlserver", nil
	case DriverPgx, DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("migrate %q: %w", r.cfg.Driver, ErrUnsupportedDriver)
	}
}
