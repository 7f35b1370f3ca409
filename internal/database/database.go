package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// InitDB opens the configured database and migrates the schema to the latest version.
// The returned teardown closes the connection pool.
func InitDB(cfg config.DatabaseConfig) (*sql.DB, func(), error) {
	driver, dsn, dialect, err := resolve(cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Info("Opening database", "driver", driver, "name", cfg.Name)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if cfg.Name == ":memory:" && cfg.Turso.PrimaryURL == "" {
		// Every new connection to :memory: would see its own empty database.
		db.SetMaxOpenConns(1)
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if driver == "libsql" {
		// Foreign key support is not enabled by default in SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			teardown()
			return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := migrate(context.Background(), db, dialect); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func resolve(cfg config.DatabaseConfig) (driver, dsn string, dialect goose.Dialect, err error) {
	switch cfg.Driver {
	case "", "sqlite3":
		return "sqlite3", "file:" + cfg.Name + "?_foreign_keys=on", goose.DialectSQLite3, nil
	case "libsql":
		// For local-only databases, Name is the filename; otherwise connect to the Turso primary.
		if cfg.Turso.PrimaryURL == "" {
			return "libsql", "file:" + cfg.Name, goose.DialectSQLite3, nil
		}
		return "libsql", cfg.Turso.PrimaryURL + "?authToken=" + cfg.Turso.AuthToken, goose.DialectSQLite3, nil
	case "pgx":
		if cfg.DSN == "" {
			return "", "", "", fmt.Errorf("pgx driver requires a DSN")
		}
		return "pgx", cfg.DSN, goose.DialectPostgres, nil
	}
	return "", "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		log.Info("Applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}
