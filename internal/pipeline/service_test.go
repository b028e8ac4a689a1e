package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"

	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/metrics"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeAnalyzer struct {
	profile emotion.EmotionalProfile
	err     error
	calls   int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (emotion.EmotionalProfile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeCache struct {
	store   map[string]emotion.EmotionalProfile
	getErr  error
	setErr  error
	getHits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]emotion.EmotionalProfile{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (emotion.EmotionalProfile, bool, error) {
	if f.getErr != nil {
		return emotion.EmotionalProfile{}, false, f.getErr
	}
	p, ok := f.store[key]
	if ok {
		f.getHits++
	}
	return p, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, profile emotion.EmotionalProfile) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.store[key] = profile
	return nil
}

type fakeArchive struct {
	stored map[string]Result
	err    error
}

func (f *fakeArchive) Put(_ context.Context, id string, result Result) error {
	if f.err != nil {
		return f.err
	}
	if f.stored == nil {
		f.stored = map[string]Result{}
	}
	f.stored[id] = result
	return nil
}

const sampleDoc = `RECOVERY STUDY

The recovery after surgery was excellent. Rehabilitation and healing
progressed with improvement in every case, p < 0.001 with n=120.`

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestRun_FullPipeline(t *testing.T) {
	t.Parallel()

	mem := metrics.NewInMemory()
	svc := NewService(WithMetrics(mem), WithRandomSource(random.New(11)))

	result, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)

	assert.Equal(t, emotion.HealingPotential, result.Profile.DominantEmotion)
	assert.NotEmpty(t, result.Scene)
	assert.Regexp(t, `^AKX-\d{4}-\d{4}-[0-9A-F]{4}$`, result.Signature.ID)
	assert.Equal(t, len(strings.Fields(sampleDoc)), result.SourceMetadata.WordCount)

	assert.EqualValues(t, 1, mem.Stage(metrics.StagePipeline).Count)
	assert.EqualValues(t, 1, mem.Stage(metrics.StageAdapt).Count)
	require.Len(t, mem.Rarities(), 1)
}

func TestRun_UnsupportedContentType(t *testing.T) {
	t.Parallel()

	mem := metrics.NewInMemory()
	svc := NewService(WithMetrics(mem))

	_, err := svc.Run(context.Background(), []byte("x"), article.ContentType("docx"))
	require.Error(t, err)
	assert.True(t, apperrors.IsUnsupportedContentType(err))
	assert.EqualValues(t, 1, mem.Stage(metrics.StagePipeline).Failures)
}

func TestRun_ExternalAnalyzerPreferred(t *testing.T) {
	t.Parallel()

	want := emotion.EmotionalProfile{
		DominantEmotion:  emotion.InnovationLevel,
		Mix:              emotion.MixScores{Breakthrough: 0.9},
		EvidenceStrength: 0.9,
		TechnicalDensity: 0.4,
		Subspecialty:     emotion.Spine,
	}
	analyzer := &fakeAnalyzer{profile: want}
	svc := NewService(WithAnalyzer(analyzer))

	result, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)
	assert.Equal(t, want, result.Profile)
	assert.Equal(t, 1, analyzer.calls)
}

func TestRun_AnalyzerFailureFallsBackToKeywords(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{err: apperrors.Internal("llm unavailable")}
	svc := NewService(WithAnalyzer(analyzer))

	result, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzer.calls)
	// Keyword fallback sees the healing vocabulary.
	assert.Equal(t, emotion.HealingPotential, result.Profile.DominantEmotion)
}

func TestRun_CacheHitSkipsAnalysis(t *testing.T) {
	t.Parallel()

	mem := metrics.NewInMemory()
	cache := newFakeCache()
	svc := NewService(WithMetrics(mem), WithCache(cache))

	first, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)

	second, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)

	assert.Equal(t, first.Profile, second.Profile)
	assert.Equal(t, 1, cache.getHits)
	hits, misses := mem.CacheStats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestRun_CacheErrorsDegradeToRecompute(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	cache.getErr = apperrors.New(apperrors.ErrCodeCacheError, "redis down")
	cache.setErr = cache.getErr
	svc := NewService(WithCache(cache))

	result, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)
	assert.Equal(t, emotion.HealingPotential, result.Profile.DominantEmotion)
}

func TestRun_DegradedAdapterRecordsFallback(t *testing.T) {
	t.Parallel()

	mem := metrics.NewInMemory()
	svc := NewService(WithMetrics(mem))

	result, err := svc.Run(context.Background(), []byte("not a pdf"), article.TypePDF)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Profile.DominantEmotion)
	assert.EqualValues(t, 1, mem.Fallbacks("pdf", "text"))
}

func TestClassify_MatchesJourneyFallback(t *testing.T) {
	t.Parallel()

	svc := NewService()
	profile := svc.Classify("recovery recovery complication")
	assert.Equal(t, emotion.HealingPotential, profile.DominantEmotion)
}

func TestArchive(t *testing.T) {
	t.Parallel()

	archive := &fakeArchive{}
	svc := NewService(WithArchive(archive))

	result, err := svc.Run(context.Background(), []byte(sampleDoc), article.TypeText)
	require.NoError(t, err)
	require.NoError(t, svc.Archive(context.Background(), result))
	assert.Contains(t, archive.stored, result.Signature.ID)

	// Without an archive configured, Archive is a no-op.
	assert.NoError(t, NewService().Archive(context.Background(), result))
}

func TestArchive_SurfacesErrors(t *testing.T) {
	t.Parallel()

	archive := &fakeArchive{err: apperrors.New(apperrors.ErrCodeStorageError, "bucket missing")}
	svc := NewService(WithArchive(archive))

	err := svc.Archive(context.Background(), Result{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorageError))
}

func TestContentKey_StableAndDistinct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ContentKey("abc"), ContentKey("abc"))
	assert.NotEqual(t, ContentKey("abc"), ContentKey("abd"))
	assert.Len(t, ContentKey(""), 64)
}
