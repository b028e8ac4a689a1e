// Package pipeline composes the engine's core stages into the operations the
// outer layers call: content adaptation, emotional classification, scene
// generation, signature derivation, and the full run that chains them.
//
// Collaborators (external analyzer, profile cache, result archive) are all
// optional.  Their failures degrade to the built-in fallbacks and are logged;
// only an unsupported content-type tag ever fails a run.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"

	"github.com/arthrokinetix/akx-engine/internal/adapters"
	"github.com/arthrokinetix/akx-engine/internal/analysis/journey"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/metrics"
	"github.com/arthrokinetix/akx-engine/internal/signature"
	"github.com/arthrokinetix/akx-engine/internal/visual"
)

// ProfileAnalyzer produces an emotional profile for document text.  An
// LLM-backed implementation can replace the built-in keyword analyzer; the
// pipeline accepts either transparently and falls back to the keyword path
// when the external analyzer errors.
type ProfileAnalyzer interface {
	Analyze(ctx context.Context, text string) (emotion.EmotionalProfile, error)
}

// ProfileCache stores computed profiles keyed by content hash.  Errors from
// either method degrade to recomputation; they never fail the pipeline.
type ProfileCache interface {
	Get(ctx context.Context, key string) (emotion.EmotionalProfile, bool, error)
	Set(ctx context.Context, key string, profile emotion.EmotionalProfile) error
}

// ResultArchive persists full pipeline results as JSON objects.
type ResultArchive interface {
	Put(ctx context.Context, id string, result Result) error
}

// Result is the output of one full pipeline run.
type Result struct {
	Profile        emotion.EmotionalProfile   `json:"profile"`
	Scene          []emotion.VisualElement    `json:"scene"`
	Signature      emotion.EmotionalSignature `json:"signature"`
	SourceMetadata article.Metadata           `json:"sourceMetadata"`
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; defaults to a nop logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(logger) }
}

// WithMetrics sets the metrics sink; defaults to a nop sink.
func WithMetrics(m metrics.EngineMetrics) Option {
	return func(s *Service) { s.metrics = metrics.OrNop(m) }
}

// WithAnalyzer installs an external profile analyzer tried before the
// built-in keyword fallback.
func WithAnalyzer(analyzer ProfileAnalyzer) Option {
	return func(s *Service) { s.analyzer = analyzer }
}

// WithCache installs a profile cache.
func WithCache(cache ProfileCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithArchive installs a result archive used by Archive.
func WithArchive(archive ResultArchive) Option {
	return func(s *Service) { s.archive = archive }
}

// WithRandomSource fixes the random source for scene generation and citation
// scoring, making runs reproducible.
func WithRandomSource(src random.Source) Option {
	return func(s *Service) { s.src = src }
}

// WithAdapterOptions forwards options to adapter construction.
func WithAdapterOptions(opts ...adapters.Option) Option {
	return func(s *Service) { s.adapterOpts = opts }
}

// Service runs the engine pipeline.  One Service is safe for concurrent use;
// each run builds its own generator state.
type Service struct {
	logger      logging.Logger
	metrics     metrics.EngineMetrics
	analyzer    ProfileAnalyzer
	cache       ProfileCache
	archive     ResultArchive
	src         random.Source
	deriver     *signature.Deriver
	adapterOpts []adapters.Option
}

// NewService constructs a Service with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNop(),
		deriver: signature.NewDeriver(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify runs the built-in keyword analyzer over raw text.  Pure, always
// succeeds.
func (s *Service) Classify(text string) emotion.EmotionalProfile {
	start := time.Now()
	profile := journey.Classify(text)
	s.metrics.RecordStage(metrics.StageAnalyze, time.Since(start), true)
	return profile
}

// AdaptContent normalizes raw input for a content-type tag.  Only unknown
// tags fail; supported formats always return a document, degraded if
// necessary.
func (s *Service) AdaptContent(raw []byte, contentType article.ContentType) (article.NormalizedDocument, error) {
	start := time.Now()
	doc, err := adapters.Adapt(raw, contentType, s.adapterOpts...)
	s.metrics.RecordStage(metrics.StageAdapt, time.Since(start), err == nil)
	if err != nil {
		return article.NormalizedDocument{}, err
	}
	if doc.Degraded {
		s.metrics.RecordAdapterFallback(string(contentType), "text")
		s.logger.Warn("content extraction degraded",
			logging.String("content_type", string(contentType)))
	}
	return doc, nil
}

// GenerateScene produces the ordered scene graph for a profile and sections.
func (s *Service) GenerateScene(profile emotion.EmotionalProfile, sections []article.ContentSection) []emotion.VisualElement {
	start := time.Now()
	scene := visual.GenerateScene(profile, sections, s.src)
	s.metrics.RecordStage(metrics.StageScene, time.Since(start), true)
	return scene
}

// DeriveSignature computes the emotional signature for a profile.
func (s *Service) DeriveSignature(profile emotion.EmotionalProfile) emotion.EmotionalSignature {
	start := time.Now()
	sig := s.deriver.Derive(profile)
	s.metrics.RecordStage(metrics.StageSignature, time.Since(start), true)
	s.metrics.RecordRarity(sig.RarityScore)
	return sig
}

// Run executes the full pipeline: adapt, profile, scene, signature.  The
// only possible error is an unsupported content-type tag.
func (s *Service) Run(ctx context.Context, raw []byte, contentType article.ContentType) (Result, error) {
	start := time.Now()

	doc, err := s.AdaptContent(raw, contentType)
	if err != nil {
		s.metrics.RecordStage(metrics.StagePipeline, time.Since(start), false)
		return Result{}, err
	}

	profile := s.profileFor(ctx, doc.Text)
	scene := s.GenerateScene(profile, doc.Structure.Sections)
	sig := s.DeriveSignature(profile)

	s.metrics.RecordStage(metrics.StagePipeline, time.Since(start), true)
	s.logger.Info("pipeline run complete",
		logging.String("content_type", string(contentType)),
		logging.String("signature_id", sig.ID),
		logging.String("subspecialty", string(profile.Subspecialty)),
		logging.Float64("rarity", sig.RarityScore))

	return Result{
		Profile:        profile,
		Scene:          scene,
		Signature:      sig,
		SourceMetadata: doc.Metadata,
	}, nil
}

// Archive stores a result under its signature id.  Unlike the in-run
// collaborators this surfaces errors, because an explicit archive request
// that silently drops data would be worse than a failed one.
func (s *Service) Archive(ctx context.Context, result Result) error {
	if s.archive == nil {
		return nil
	}
	return s.archive.Put(ctx, result.Signature.ID, result)
}

// profileFor resolves a document's profile: cache, then external analyzer,
// then the keyword fallback.  Every failure path degrades silently to the
// next source.
func (s *Service) profileFor(ctx context.Context, text string) emotion.EmotionalProfile {
	key := ContentKey(text)

	if s.cache != nil {
		profile, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("profile cache read failed", logging.Err(err))
		} else {
			s.metrics.RecordCacheAccess(ok)
			if ok {
				return profile
			}
		}
	}

	profile, fromAnalyzer := s.analyze(ctx, text)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, profile); err != nil {
			s.logger.Warn("profile cache write failed", logging.Err(err))
		}
	}
	if fromAnalyzer {
		s.logger.Debug("profile produced by external analyzer")
	}
	return profile
}

// analyze prefers the external analyzer, falling back to the keyword path on
// any error.
func (s *Service) analyze(ctx context.Context, text string) (emotion.EmotionalProfile, bool) {
	if s.analyzer != nil {
		start := time.Now()
		profile, err := s.analyzer.Analyze(ctx, text)
		if err == nil {
			s.metrics.RecordStage(metrics.StageAnalyze, time.Since(start), true)
			return profile, true
		}
		s.metrics.RecordStage(metrics.StageAnalyze, time.Since(start), false)
		s.logger.Warn("external analyzer failed, using keyword fallback", logging.Err(err))
	}
	return s.Classify(text), false
}

// ContentKey is the cache key for document text: hex SHA-256.
func ContentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
