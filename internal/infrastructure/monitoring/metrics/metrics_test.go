package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_RegistersOnce(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Double registration on the same registry must fail loudly.
	_, err = NewPrometheus(reg)
	assert.Error(t, err)
}

func TestPrometheus_RecordsWithoutPanic(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg)
	require.NoError(t, err)

	m.RecordStage(StageAdapt, 3*time.Millisecond, true)
	m.RecordStage(StagePipeline, 10*time.Millisecond, false)
	m.RecordAdapterFallback("pdf", "structure")
	m.RecordCacheAccess(true)
	m.RecordRarity(0.73)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestInMemory_Aggregates(t *testing.T) {
	t.Parallel()
	m := NewInMemory()
	m.RecordStage(StageAnalyze, 2*time.Millisecond, true)
	m.RecordStage(StageAnalyze, 4*time.Millisecond, false)

	st := m.Stage(StageAnalyze)
	assert.EqualValues(t, 2, st.Count)
	assert.EqualValues(t, 1, st.Failures)
	assert.Equal(t, 6*time.Millisecond, st.TotalTime)

	assert.Zero(t, m.Stage("unknown").Count)
}

func TestInMemory_FallbacksAndCache(t *testing.T) {
	t.Parallel()
	m := NewInMemory()
	m.RecordAdapterFallback("html", "text")
	m.RecordAdapterFallback("html", "text")
	m.RecordCacheAccess(true)
	m.RecordCacheAccess(false)
	m.RecordCacheAccess(false)
	m.RecordRarity(0.2)
	m.RecordRarity(0.8)

	assert.EqualValues(t, 2, m.Fallbacks("html", "text"))
	assert.EqualValues(t, 0, m.Fallbacks("pdf", "text"))
	hits, misses := m.CacheStats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 2, misses)
	assert.Equal(t, []float64{0.2, 0.8}, m.Rarities())
}

func TestInMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	m := NewInMemory()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				m.RecordStage(StageScene, time.Millisecond, true)
				m.RecordCacheAccess(k%2 == 0)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 800, m.Stage(StageScene).Count)
}

func TestNopAndOrNop(t *testing.T) {
	t.Parallel()
	n := NewNop()
	assert.NotPanics(t, func() {
		n.RecordStage(StageAdapt, time.Second, true)
		n.RecordAdapterFallback("a", "b")
		n.RecordCacheAccess(false)
		n.RecordRarity(1)
	})
	assert.NotNil(t, OrNop(nil))
	m := NewInMemory()
	assert.Equal(t, EngineMetrics(m), OrNop(m))
}
