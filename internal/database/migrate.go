package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsDir returns the directory name under migrations/ holding the schema for driver.
func MigrationsDir(driver string) string {
	if driver == "postgres" {
		return "postgresql"
	}
	return driver
}

// FindMigrations walks up from the working directory until migrations/<dir> exists
// and returns it as a file:// source URL.
func FindMigrations(driver string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	start := dir
	for {
		path := filepath.Join(dir, "migrations", MigrationsDir(driver))
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return "file://" + filepath.ToSlash(path), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found for %s (started from %s)", driver, start)
		}
		dir = parent
	}
}

// Migrate applies every pending migration from sourceURL to db.
//
// The migrate instance is not closed: it would close the connection, which belongs to the caller.
// MySQL pools opened by Connect already allow multi-statement migration files.
func Migrate(db *sql.DB, driver, sourceURL string) error {
	var (
		instance migratedb.Driver
		err      error
	)

	switch driver {
	case "postgres":
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case "mysql":
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	case "sqlite":
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported migration driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, driver, instance)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
