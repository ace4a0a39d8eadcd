package postgres

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"blogboard/internal/logger"
)

// RunMigrations applies all pending migrations from migrationsPath
// against the database at dsn. A database already at the latest version
// is not an error.
func RunMigrations(migrationsPath, dsn string, log *logger.Logger) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), dsn)
	if err != nil {
		log.Error("Failed to init migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Error("Failed to close migration source", slog.String("error", srcErr.Error()))
		}
		if dbErr != nil {
			log.Error("Failed to close migration database", slog.String("error", dbErr.Error()))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("Migrations already up to date")
			return nil
		}
		log.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	log.Info("Migrations applied")
	return nil
}
