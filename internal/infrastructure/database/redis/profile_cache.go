package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// profileKeyspace separates cached profiles from anything else sharing the
// prefix.
const profileKeyspace = "profile:"

// cacheCmdable is the subset of redis.Client the cache uses; it keeps the
// cache testable without a live server.
type cacheCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ProfileCache stores emotional profiles as JSON under
// <prefix>profile:<content-hash> with TTL expiry.  It satisfies the
// pipeline's ProfileCache seam.
type ProfileCache struct {
	client cacheCmdable
	prefix string
	ttl    time.Duration
	logger logging.Logger
}

// NewProfileCache constructs a cache.  A zero ttl means no expiry.
func NewProfileCache(client cacheCmdable, prefix string, ttl time.Duration, logger logging.Logger) *ProfileCache {
	return &ProfileCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logging.OrNop(logger),
	}
}

func (c *ProfileCache) key(contentKey string) string {
	return c.prefix + profileKeyspace + contentKey
}

// Get loads a cached profile.  A missing key is (zero, false, nil); only
// transport or decode failures return an error.
func (c *ProfileCache) Get(ctx context.Context, contentKey string) (emotion.EmotionalProfile, bool, error) {
	raw, err := c.client.Get(ctx, c.key(contentKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emotion.EmotionalProfile{}, false, nil
		}
		return emotion.EmotionalProfile{}, false, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "read cached profile")
	}

	var profile emotion.EmotionalProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// A corrupt entry reads as a miss worth recomputing, not a failure.
		c.logger.Warn("corrupt cached profile dropped", logging.Err(err))
		return emotion.EmotionalProfile{}, false, nil
	}
	return profile, true, nil
}

// Set stores a profile under the content key.
func (c *ProfileCache) Set(ctx context.Context, contentKey string, profile emotion.EmotionalProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshal profile")
	}
	if err := c.client.Set(ctx, c.key(contentKey), raw, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "write cached profile")
	}
	return nil
}
