package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/migrations"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
	_ "modernc.org/sqlite"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger logger.Logger
	Config *config.Config
}

// OpenSQLite opens the SQLite file at path. A single connection keeps writes
// serialized and makes ":memory:" databases behave as one database.
func OpenSQLite(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// NewSQLite opens the configured SQLite database and migrates it before any
// repository uses it.
func NewSQLite(opts Opts) (*sql.DB, error) {
	conn, err := OpenSQLite(opts.Config.Database.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := migrations.Up(context.Background(), conn, migrations.DialectSQLite); err != nil {
		conn.Close()
		return nil, err
	}

	opts.Logger.Info("Using SQLite database", "path", opts.Config.Database.SQLitePath)

	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return conn.Close()
		},
	})

	return conn, nil
}

// MigratePostgres runs pending migrations over a short-lived lib/pq connection.
func MigratePostgres(cfg *config.Config, log logger.Logger) error {
	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := migrations.Up(context.Background(), conn, migrations.DialectPostgres); err != nil {
		return err
	}

	log.Info("Postgres migrations applied")
	return nil
}
