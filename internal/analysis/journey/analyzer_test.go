package journey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// padTo right-pads s with a filler that matches no vocabulary, keeping the
// final marker word on a word boundary.
func padTo(s string, n int) string {
	if !strings.HasSuffix(s, " ") {
		s += " "
	}
	return s + strings.Repeat("z", n-len(s))
}

func TestAnalyze_PerMilleDensities(t *testing.T) {
	t.Parallel()

	text := padTo(strings.Repeat("recovery ", 6)+strings.Repeat("complication ", 2), 2000)
	require.Len(t, text, 2000)

	scores := Analyze(text)
	assert.InDelta(t, 3.0, scores.HealingPotential, 1e-9)
	assert.InDelta(t, 1.0, scores.ProblemIntensity, 1e-9)
	assert.Zero(t, scores.SolutionConfidence)
	assert.Zero(t, scores.InnovationLevel)
	assert.Zero(t, scores.UncertaintyLevel)
	assert.Equal(t, emotion.HealingPotential, scores.Dominant())
}

func TestAnalyze_EmptyText(t *testing.T) {
	t.Parallel()

	scores := Analyze("")
	assert.True(t, scores.AllZero())
}

func TestClassify_EndToEnd(t *testing.T) {
	t.Parallel()

	text := padTo(strings.Repeat("recovery ", 6)+strings.Repeat("complication ", 2), 2000)

	profile := Classify(text)
	assert.Equal(t, emotion.HealingPotential, profile.DominantEmotion)
	assert.InDelta(t, 3.0, profile.Journey.HealingPotential, 1e-9)
	assert.InDelta(t, 1.0, profile.Journey.ProblemIntensity, 1e-9)

	// Mix rescales by the max journey value; healing feeds hope too.
	assert.InDelta(t, 1.0, profile.Mix.Healing, 1e-9)
	assert.InDelta(t, 1.0, profile.Mix.Hope, 1e-9)
	assert.InDelta(t, 1.0/3.0, profile.Mix.Tension, 1e-9)
	assert.Zero(t, profile.Mix.Confidence)

	// No subspecialty vocabulary present, so the default applies.
	assert.Equal(t, emotion.SportsMedicine, profile.Subspecialty)
}

func TestClassify_AllZeroFallsBackToNeutralProfile(t *testing.T) {
	t.Parallel()

	profile := Classify("zzzz qqqq wwww")
	assert.True(t, profile.Journey.AllZero())
	assert.Equal(t, emotion.ProblemIntensity, profile.DominantEmotion)
	assert.InDelta(t, 0.5, profile.EvidenceStrength, 1e-9)
	assert.InDelta(t, 0.5, profile.TechnicalDensity, 1e-9)
	assert.Equal(t, emotion.SportsMedicine, profile.Subspecialty)
	assert.Equal(t, emotion.MixScores{}, profile.Mix)
}

func TestClassify_EvidenceFromStatistics(t *testing.T) {
	t.Parallel()

	// p <= 0.001 scores 1.0 and n=150 scores 0.8; summed and divided by 5.
	profile := Classify("recovery with p < 0.001 and n=150")
	assert.InDelta(t, 0.36, profile.EvidenceStrength, 1e-9)
}

func TestClassify_EvidenceFromCitations(t *testing.T) {
	t.Parallel()

	// Two year mentions contribute 1/40 each; no statistical mentions.
	profile := Classify("recovery reported in 1999 and 2005")
	assert.InDelta(t, 0.05, profile.EvidenceStrength, 1e-9)
}

func TestClassify_TechnicalDensity(t *testing.T) {
	t.Parallel()

	// surgery (3.0) + recovery (2.5) over 1100 chars: 5 per mille, scaled /50.
	text := padTo("surgery recovery", 1100)
	require.Len(t, text, 1100)

	profile := Classify(text)
	assert.InDelta(t, 0.1, profile.TechnicalDensity, 1e-9)
	assert.InDelta(t, 1000.0/1100.0, profile.Journey.HealingPotential, 1e-9)
}

func TestClassify_UsesSubspecialtyClassifier(t *testing.T) {
	t.Parallel()

	profile := Classify("recovery after lumbar spinal fusion with laminectomy")
	assert.Equal(t, emotion.Spine, profile.Subspecialty)
}
