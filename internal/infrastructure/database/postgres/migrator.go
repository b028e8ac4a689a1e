package postgres

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migration driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source

	"github.com/arthrokinetix/akx-engine/internal/config"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

// Migrate applies all pending schema migrations from cfg.MigrationPath.
// A schema that is already current is not an error.
func Migrate(cfg config.DatabaseConfig, logger logging.Logger) error {
	logger = logging.OrNop(logger)

	m, err := migrate.New("file://"+cfg.MigrationPath, URL(cfg))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "open migration source")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("schema already current")
			return nil
		}
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "read migration version")
	}
	logger.Info("schema migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty))
	return nil
}
