package signature

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

func fixedDeriver() *Deriver {
	return NewDeriver(
		WithClock(func() time.Time {
			return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
		}),
		WithSuffix(func() string { return "AB12" }),
	)
}

func healingProfile() emotion.EmotionalProfile {
	return emotion.EmotionalProfile{
		Journey: emotion.JourneyScores{
			ProblemIntensity: 1.0, SolutionConfidence: 2.0, HealingPotential: 4.0,
		},
		DominantEmotion: emotion.HealingPotential,
		Mix: emotion.MixScores{
			Hope: 1.0, Confidence: 0.5, Healing: 1.0, Tension: 0.25,
		},
		EvidenceStrength: 0.7,
		TechnicalDensity: 0.3,
		Subspecialty:     emotion.SportsMedicine,
	}
}

func TestDerive_IDFormat(t *testing.T) {
	t.Parallel()

	sig := fixedDeriver().Derive(healingProfile())
	assert.Equal(t, "AKX-2024-0307-AB12", sig.ID)

	// Default suffix source still honors the shape.
	wild := NewDeriver().Derive(healingProfile())
	assert.Regexp(t, regexp.MustCompile(`^AKX-\d{4}-\d{4}-[0-9A-F]{4}$`), wild.ID)
}

func TestDerive_RingsAndParticles(t *testing.T) {
	t.Parallel()

	sig := fixedDeriver().Derive(healingProfile())
	assert.Equal(t, 4, sig.ConcentricRings.Count)     // ⌊0.7×5⌋+1
	assert.Equal(t, 15, sig.FloatingParticles.Count)  // ⌊0.5×20⌋+5
	assert.Equal(t, "flowing", sig.FloatingParticles.MovementPattern)
}

func TestDerive_ShapeTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dominant emotion.JourneyDimension
		shape    string
	}{
		{emotion.HealingPotential, "hexagon"},
		{emotion.SolutionConfidence, "square"},
		{emotion.InnovationLevel, "star"},
		{emotion.ProblemIntensity, "triangle"},
		{emotion.UncertaintyLevel, "diamond"},
	}
	for _, tt := range tests {
		profile := healingProfile()
		profile.DominantEmotion = tt.dominant
		sig := fixedDeriver().Derive(profile)
		assert.Equal(t, tt.shape, sig.GeometricOverlay.Shape)
	}
}

func TestDerive_GradientTopThree(t *testing.T) {
	t.Parallel()

	sig := fixedDeriver().Derive(healingProfile())
	require.Len(t, sig.ColorGradient, 3)
	assert.InDelta(t, 0.0, sig.ColorGradient[0].Stop, 1e-9)
	assert.InDelta(t, 0.5, sig.ColorGradient[1].Stop, 1e-9)
	assert.InDelta(t, 1.0, sig.ColorGradient[2].Stop, 1e-9)
	assert.InDelta(t, 0.8, sig.ColorGradient[0].Opacity, 1e-9)
	assert.InDelta(t, 0.4, sig.ColorGradient[2].Opacity, 1e-9)
}

func TestDerive_DeterministicExceptID(t *testing.T) {
	t.Parallel()

	a := NewDeriver().Derive(healingProfile())
	b := NewDeriver().Derive(healingProfile())
	a.ID, b.ID = "", ""
	assert.Equal(t, a, b)
}

func TestRarity_MonotonicInVariance(t *testing.T) {
	t.Parallel()

	// Flat mix: zero variance.
	flat := emotion.EmotionalProfile{
		Mix: emotion.MixScores{Hope: 0.5, Confidence: 0.5, Breakthrough: 0.5, Healing: 0.5, Tension: 0.5, Uncertainty: 0.5},
	}
	// Spread mix: higher variance, identical bonus terms.
	spread := emotion.EmotionalProfile{
		Mix: emotion.MixScores{Hope: 1.0, Confidence: 0.1, Breakthrough: 0.5, Healing: 0.9, Tension: 0.1, Uncertainty: 0.1},
	}

	assert.Zero(t, Rarity(flat))
	assert.Greater(t, Rarity(spread), Rarity(flat))
}

func TestRarity_BonusesAndClamp(t *testing.T) {
	t.Parallel()

	profile := emotion.EmotionalProfile{
		Mix:              emotion.MixScores{Breakthrough: 1.0},
		TechnicalDensity: 0.9,
	}
	base := profile
	base.Mix.Breakthrough = 0.5
	base.TechnicalDensity = 0.5

	assert.Greater(t, Rarity(profile), Rarity(base))
	assert.LessOrEqual(t, Rarity(profile), 1.0)
	assert.GreaterOrEqual(t, Rarity(profile), 0.0)
}
