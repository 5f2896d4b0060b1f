package scripts

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/issafronov/leadredirect/internal/middleware/logger"
)

// DefaultMigrationsPath — каталог миграций относительно корня репозитория
const DefaultMigrationsPath = "file://internal/scripts/migrations"

// RunMigrations применяет миграции таблицы clicks из sourceURL к базе databaseURI
func RunMigrations(sourceURL, databaseURI string) error {
	if sourceURL == "" {
		sourceURL = DefaultMigrationsPath
	}

	m, err := migrate.New(sourceURL, databaseURI)
	if err != nil {
		logger.Log.Error("failed to initialize migrate", zap.Error(err))
		return fmt.Errorf("failed to init migrate: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Log.Info("no migrations to apply")
			return nil
		}
		logger.Log.Error("failed to apply migrations", zap.Error(err))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Log.Info("migrations applied successfully", zap.String("source", sourceURL))
	return nil
}
