// Package metrics provides the engine's operational telemetry API with three
// interchangeable implementations: Prometheus for production, in-memory for
// inspection in tests and the CLI, and a no-op.  Components record through
// the EngineMetrics interface so the backend can be swapped without touching
// pipeline code.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// namespace prefixes every Prometheus metric emitted by the engine.
const namespace = "akx_engine"

// Stage names used as metric labels.
const (
	StageAdapt     = "adapt"
	StageAnalyze   = "analyze"
	StageScene     = "scene"
	StageSignature = "signature"
	StagePipeline  = "pipeline"
)

// EngineMetrics is the unified telemetry contract of the engine.
type EngineMetrics interface {
	// RecordStage records one pipeline stage execution.
	RecordStage(stage string, d time.Duration, success bool)

	// RecordAdapterFallback records an extraction aspect that degraded to a
	// fallback strategy (labels: content type, aspect).
	RecordAdapterFallback(contentType, aspect string)

	// RecordCacheAccess records a profile-cache hit or miss.
	RecordCacheAccess(hit bool)

	// RecordRarity records the rarity score of one derived signature.
	RecordRarity(score float64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Prometheus implementation
// ─────────────────────────────────────────────────────────────────────────────

type promMetrics struct {
	stageDuration *prometheus.HistogramVec
	stageTotal    *prometheus.CounterVec
	fallbackTotal *prometheus.CounterVec
	cacheTotal    *prometheus.CounterVec
	rarity        prometheus.Histogram
}

// NewPrometheus constructs an EngineMetrics that registers its collectors on
// reg (use prometheus.DefaultRegisterer in production).  Registration errors
// surface immediately so duplicate registration is caught at startup.
func NewPrometheus(reg prometheus.Registerer) (EngineMetrics, error) {
	m := &promMetrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stage executions.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"stage"}),
		stageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_total",
			Help:      "Count of pipeline stage executions by outcome.",
		}, []string{"stage", "outcome"}),
		fallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_fallback_total",
			Help:      "Count of degraded extraction fallbacks by content type and aspect.",
		}, []string{"content_type", "aspect"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_cache_total",
			Help:      "Profile cache accesses by result.",
		}, []string{"result"}),
		rarity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "signature_rarity",
			Help:      "Distribution of derived signature rarity scores.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
	for _, c := range []prometheus.Collector{
		m.stageDuration, m.stageTotal, m.fallbackTotal, m.cacheTotal, m.rarity,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *promMetrics) RecordStage(stage string, d time.Duration, success bool) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.stageTotal.WithLabelValues(stage, outcome).Inc()
}

func (m *promMetrics) RecordAdapterFallback(contentType, aspect string) {
	m.fallbackTotal.WithLabelValues(contentType, aspect).Inc()
}

func (m *promMetrics) RecordCacheAccess(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheTotal.WithLabelValues(result).Inc()
}

func (m *promMetrics) RecordRarity(score float64) {
	m.rarity.Observe(score)
}

// ─────────────────────────────────────────────────────────────────────────────
// In-memory implementation
// ─────────────────────────────────────────────────────────────────────────────

// StageStat is a point-in-time aggregate for one stage.
type StageStat struct {
	Count     int64
	Failures  int64
	TotalTime time.Duration
}

// InMemory is an EngineMetrics that aggregates in process memory.  Safe for
// concurrent use; intended for tests and the CLI's verbose summary.
type InMemory struct {
	mu        sync.Mutex
	stages    map[string]*StageStat
	fallbacks map[string]int64 // key: contentType + "/" + aspect
	cacheHits int64
	cacheMiss int64
	rarities  []float64
}

// NewInMemory constructs an empty InMemory collector.
func NewInMemory() *InMemory {
	return &InMemory{
		stages:    make(map[string]*StageStat),
		fallbacks: make(map[string]int64),
	}
}

func (m *InMemory) RecordStage(stage string, d time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stages[stage]
	if !ok {
		st = &StageStat{}
		m.stages[stage] = st
	}
	st.Count++
	st.TotalTime += d
	if !success {
		st.Failures++
	}
}

func (m *InMemory) RecordAdapterFallback(contentType, aspect string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks[contentType+"/"+aspect]++
}

func (m *InMemory) RecordCacheAccess(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMiss++
	}
}

func (m *InMemory) RecordRarity(score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rarities = append(m.rarities, score)
}

// Stage returns a copy of the aggregate for one stage.
func (m *InMemory) Stage(stage string) StageStat {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stages[stage]; ok {
		return *st
	}
	return StageStat{}
}

// Fallbacks returns the recorded fallback count for a content type / aspect pair.
func (m *InMemory) Fallbacks(contentType, aspect string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbacks[contentType+"/"+aspect]
}

// CacheStats returns (hits, misses).
func (m *InMemory) CacheStats() (int64, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits, m.cacheMiss
}

// Rarities returns a copy of all recorded rarity scores.
func (m *InMemory) Rarities() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.rarities...)
}

// ─────────────────────────────────────────────────────────────────────────────
// No-op implementation
// ─────────────────────────────────────────────────────────────────────────────

type nopMetrics struct{}

func (nopMetrics) RecordStage(string, time.Duration, bool) {}
func (nopMetrics) RecordAdapterFallback(string, string)    {}
func (nopMetrics) RecordCacheAccess(bool)                  {}
func (nopMetrics) RecordRarity(float64)                    {}

// NewNop returns an EngineMetrics that discards everything.
func NewNop() EngineMetrics { return nopMetrics{} }

// OrNop returns m when non-nil and the no-op collector otherwise.
func OrNop(m EngineMetrics) EngineMetrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
