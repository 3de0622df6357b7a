package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/db"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/migrations"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dialect := migrations.DialectPostgres
	if cfg.UseSQLite() {
		dialect = migrations.DialectSQLite
	}

	// The create command writes to the source tree, not the embedded copy
	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		createMigration(dialect, os.Args[2])
		return
	}

	conn, err := open(cfg, dialect)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	migrationsDir, err := migrations.Prepare(dialect)
	if err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}
	fmt.Printf("Running %s migrations\n", dialect)

	switch command {
	case "up":
		if err := goose.Up(conn, migrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(conn, migrationsDir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.Status(conn, migrationsDir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := goose.Reset(conn, migrationsDir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func open(cfg *config.Config, dialect string) (*sql.DB, error) {
	if dialect == migrations.DialectSQLite {
		return db.OpenSQLite(cfg.Database.SQLitePath)
	}

	conn, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func createMigration(dialect, name string) {
	dir, err := migrations.Dir(dialect)
	if err != nil {
		log.Fatalf("Failed to resolve migrations dir: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Failed to get working directory: %v", err)
	}

	migrationsDir := filepath.Join(wd, "internal", "migrations", dir)
	fmt.Printf("Creating migration in: %s\n", migrationsDir)

	goose.SetSequential(true)
	if err := goose.Create(nil, migrationsDir, name, "sql"); err != nil {
		log.Fatalf("Failed to create migration: %v", err)
	}
}
