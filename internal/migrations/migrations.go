package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Dir returns the embedded migration directory for dialect.
func Dir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}

// Up applies every pending migration for dialect. It does not touch goose's
// package-level state, so it is safe to call from parallel tests.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	dir, err := Dir(dialect)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(FS, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(goose.Dialect(dialect), db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Prepare points goose's global state at the embedded files for dialect and
// returns the directory to pass to goose commands. Used by the migrate CLI.
func Prepare(dialect string) (string, error) {
	dir, err := Dir(dialect)
	if err != nil {
		return "", err
	}

	goose.SetBaseFS(FS)
	if err := goose.SetDialect(dialect); err != nil {
		return "", err
	}
	return dir, nil
}
