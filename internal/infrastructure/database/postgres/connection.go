// Package postgres provides the optional artwork repository: PostgreSQL
// connection management, schema migration, and persistence of pipeline
// results as artwork rows.  The engine runs fully offline when the database
// is disabled; nothing in the core imports this package.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arthrokinetix/akx-engine/internal/config"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

// DSN builds the keyword/value connection string for a database config.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// URL builds the URL-form DSN the migration tooling expects.
func URL(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
}

// Connect opens a pgx pool with the configured sizing and verifies it with a
// ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*pgxpool.Pool, error) {
	logger = logging.OrNop(logger)

	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "parse database config")
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "ping database")
	}

	logger.Info("database connected",
		logging.String("host", cfg.Host),
		logging.Int("port", cfg.Port),
		logging.String("db", cfg.DBName))
	return pool, nil
}
