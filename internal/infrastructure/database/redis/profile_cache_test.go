package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// fakeRedis implements cacheCmdable over a map.
type fakeRedis struct {
	data    map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func sampleProfile() emotion.EmotionalProfile {
	return emotion.EmotionalProfile{
		Journey:          emotion.JourneyScores{HealingPotential: 3},
		DominantEmotion:  emotion.HealingPotential,
		Mix:              emotion.MixScores{Hope: 1, Healing: 1},
		EvidenceStrength: 0.4,
		TechnicalDensity: 0.2,
		Subspecialty:     emotion.SportsMedicine,
	}
}

func TestProfileCache_RoundTrip(t *testing.T) {
	t.Parallel()

	fake := newFakeRedis()
	cache := NewProfileCache(fake, "akx:", time.Hour, nil)

	_, ok, err := cache.Get(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(context.Background(), "deadbeef", sampleProfile()))
	assert.Contains(t, fake.data, "akx:profile:deadbeef")
	assert.Equal(t, time.Hour, fake.lastTTL)

	got, ok, err := cache.Get(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleProfile(), got)
}

func TestProfileCache_CorruptEntryReadsAsMiss(t *testing.T) {
	t.Parallel()

	fake := newFakeRedis()
	fake.data["akx:profile:bad"] = "{not json"
	cache := NewProfileCache(fake, "akx:", 0, nil)

	_, ok, err := cache.Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileCache_TransportErrors(t *testing.T) {
	t.Parallel()

	fake := newFakeRedis()
	fake.getErr = assert.AnError
	fake.setErr = assert.AnError
	cache := NewProfileCache(fake, "", 0, nil)

	_, _, err := cache.Get(context.Background(), "k")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCacheError))

	err = cache.Set(context.Background(), "k", sampleProfile())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCacheError))
}
