// Package signature derives the emotional signature overlay and its rarity
// score from an emotional profile.  Everything except the id's hex suffix is
// a pure function of the profile, so re-deriving from a stored profile
// reproduces the same components.
package signature

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arthrokinetix/akx-engine/internal/visual"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// idPrefix starts every signature id: AKX-<year>-<MMDD>-<4 hex chars>.
const idPrefix = "AKX"

// Rarity scaling: population variance of the six-emotion vector times ten,
// clamped to [0,1], plus engine bonuses for strong breakthrough signal and
// dense technical content.
const (
	rarityVarianceScale      = 10.0
	rarityBreakthroughCutoff = 0.7
	rarityBreakthroughBonus  = 0.1
	rarityTechnicalCutoff    = 0.8
	rarityTechnicalBonus     = 0.05
)

// shapes is the fixed emotion→overlay-shape table.
var shapes = map[emotion.Emotion]string{
	emotion.Hope:         "circle",
	emotion.Confidence:   "square",
	emotion.Breakthrough: "star",
	emotion.Healing:      "hexagon",
	emotion.Tension:      "triangle",
	emotion.Uncertainty:  "diamond",
}

// movementPatterns maps the dominant emotion to the particle cloud's motion.
var movementPatterns = map[emotion.Emotion]string{
	emotion.Hope:         "ascending",
	emotion.Confidence:   "orbital",
	emotion.Breakthrough: "radiating",
	emotion.Healing:      "flowing",
	emotion.Tension:      "chaotic",
	emotion.Uncertainty:  "drifting",
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithClock overrides the timestamp source for the id.
func WithClock(now func() time.Time) Option {
	return func(d *Deriver) { d.now = now }
}

// WithSuffix overrides the 4-hex-char id suffix source.
func WithSuffix(suffix func() string) Option {
	return func(d *Deriver) { d.suffix = suffix }
}

// Deriver produces emotional signatures.  The zero options give wall-clock
// timestamps and uuid-derived suffixes.
type Deriver struct {
	now    func() time.Time
	suffix func() string
}

// NewDeriver constructs a Deriver.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		now: time.Now,
		suffix: func() string {
			return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive computes the signature for a profile.
func (d *Deriver) Derive(profile emotion.EmotionalProfile) emotion.EmotionalSignature {
	dominant := profile.DominantBucket()
	evidence := clamp01(profile.EvidenceStrength)
	confidence := clamp01(profile.Mix.Confidence)

	return emotion.EmotionalSignature{
		ID: d.newID(),
		ConcentricRings: emotion.ConcentricRings{
			Count:         int(evidence*5) + 1,
			Thickness:     1 + evidence*3,
			RotationSpeed: 0.2 + evidence,
		},
		GeometricOverlay: emotion.GeometricOverlay{
			Shape: shapes[dominant],
			Color: visual.ColorFor(dominant, 0.8),
			Scale: 0.5 + clamp01(profile.Mix.Get(dominant))*0.5,
		},
		FloatingParticles: emotion.FloatingParticles{
			Count:           int(confidence*20) + 5,
			Color:           visual.ColorFor(dominant, 0.6),
			MovementPattern: movementPatterns[dominant],
		},
		ColorGradient: gradient(profile.Mix),
		RarityScore:   Rarity(profile),
	}
}

func (d *Deriver) newID() string {
	now := d.now().UTC()
	return fmt.Sprintf("%s-%d-%02d%02d-%s", idPrefix, now.Year(), int(now.Month()), now.Day(), d.suffix())
}

// gradient builds up to three stops from the top-scoring emotions, strongest
// first, evenly spaced and fading in opacity.
func gradient(mix emotion.MixScores) []emotion.GradientStop {
	top := mix.Top(3)
	stops := make([]emotion.GradientStop, 0, len(top))
	for i, e := range top {
		position := 0.0
		if len(top) > 1 {
			position = float64(i) / float64(len(top)-1)
		}
		stops = append(stops, emotion.GradientStop{
			Color:   visual.ColorFor(e, clamp01(mix.Get(e))),
			Stop:    position,
			Opacity: 0.8 - 0.2*float64(i),
		})
	}
	return stops
}

// Rarity is the population variance of the six emotion values scaled by ten
// and clamped to [0,1], with bonuses for a strong breakthrough signal and
// dense technical content.  It is monotonic in the variance when the bonus
// terms are held equal.
func Rarity(profile emotion.EmotionalProfile) float64 {
	score := profile.Mix.Variance() * rarityVarianceScale
	if profile.Mix.Breakthrough > rarityBreakthroughCutoff {
		score += rarityBreakthroughBonus
	}
	if profile.TechnicalDensity > rarityTechnicalCutoff {
		score += rarityTechnicalBonus
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
