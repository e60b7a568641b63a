package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/authkit/internal/config"
)

// migrationsPath returns the migration source for a database driver.
func migrationsPath(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "file://migrations/postgresql", nil
	case config.DriverMySQL:
		return "file://migrations/mysql", nil
	case config.DriverMemory:
		return "", fmt.Errorf("the memory driver has no schema to migrate")
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// RunMigrations applies all pending migrations for the users table.
// Returns nil if there is nothing to apply.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations", slog.String("driver", dbDriver))

	path, err := migrationsPath(dbDriver)
	if err != nil {
		return err
	}

	m, err := migrate.New(path, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
