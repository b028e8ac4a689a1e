// Package random provides the injectable random source used by every
// stochastic step in the engine (branch jitter, sub-branch spawning, citation
// scoring).  Components never reach for an ambient generator; they receive a
// Source so tests can fix seeds and assert exact geometry.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed floats in [0, 1).  Implementations must
// be safe for use from a single goroutine; the engine constructs one Source
// per pipeline run.
type Source interface {
	Float64() float64
}

// lockedSource wraps math/rand with a mutex so a single Source can be shared
// by helper goroutines in callers that want that.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// New returns a seeded Source.  The same seed always reproduces the same
// sequence, which is how callers obtain reproducible artwork from identical
// input.
func New(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Source seeded from the wall clock.  This is the
// production default; each run produces a distinct tree.
func NewTimeSeeded() Source {
	return New(time.Now().UnixNano())
}

// Fixed returns a Source that replays the given values in order and then
// cycles.  It panics when constructed with no values.  Intended for tests
// that need exact control over every draw.
func Fixed(values ...float64) Source {
	if len(values) == 0 {
		panic("random: Fixed requires at least one value")
	}
	return &fixedSource{values: values}
}

type fixedSource struct {
	values []float64
	next   int
}

func (s *fixedSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// InRange maps a draw from src onto [min, max).
func InRange(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}
