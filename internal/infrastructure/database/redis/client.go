// Package redis provides the optional profile cache: computed emotional
// profiles keyed by content hash, with TTL expiry.  Cache failures are
// always safe — the pipeline recomputes instead.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/arthrokinetix/akx-engine/internal/config"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

// NewClient opens a Redis client and verifies it with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) (*redis.Client, error) {
	logger = logging.OrNop(logger)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "ping redis")
	}

	logger.Info("redis connected", logging.String("addr", cfg.Addr))
	return client, nil
}
