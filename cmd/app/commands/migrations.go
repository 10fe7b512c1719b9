package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/allisson/cardguard/internal/config"
	"github.com/allisson/cardguard/internal/database"
)

// RunMigrations applies the pending schema migrations for a SQL storage driver.
// The migrations directory is located by walking up from the working directory.
// The file driver keeps its state in JSON documents and has nothing to migrate.
func RunMigrations(logger *slog.Logger, driver string, db *sql.DB) error {
	if driver == config.StorageDriverFile {
		return fmt.Errorf("storage driver %q does not use migrations", driver)
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	sourceURL, err := database.FindMigrations(driver)
	if err != nil {
		return err
	}

	if err := database.Migrate(db, driver, sourceURL); err != nil {
		return err
	}

	logger.Info("migrations completed successfully", slog.String("source", sourceURL))
	return nil
}
