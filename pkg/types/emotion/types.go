// Package emotion defines the shared emotional-analysis vocabulary of the
// engine: the five-dimension journey scores, the six-bucket emotional mix,
// the emotional profile, visual scene elements, and the derived signature.
//
// Two parallel emotion representations exist on purpose.  The five-value
// "journey" is the analytically primary output of keyword-density analysis;
// the six-value "mix" is a rescaled view kept for consumers that speak the
// hope/confidence/breakthrough/healing/tension/uncertainty vocabulary
// (palettes, signatures, renderers).  Collapsing them would break the
// rendering contract, so both are carried on the profile.
package emotion

import "sort"

// ─────────────────────────────────────────────────────────────────────────────
// Six-bucket emotions
// ─────────────────────────────────────────────────────────────────────────────

// Emotion is one of the six bucket names used by palettes, section tones, and
// signature derivation.
type Emotion string

const (
	Hope         Emotion = "hope"
	Confidence   Emotion = "confidence"
	Breakthrough Emotion = "breakthrough"
	Healing      Emotion = "healing"
	Tension      Emotion = "tension"
	Uncertainty  Emotion = "uncertainty"
)

// AllEmotions lists the six buckets in canonical order.  Iteration over this
// slice (never over a map) is what makes tie-breaks stable.
var AllEmotions = []Emotion{Hope, Confidence, Breakthrough, Healing, Tension, Uncertainty}

// Valid reports whether e is one of the six known buckets.
func (e Emotion) Valid() bool {
	for _, known := range AllEmotions {
		if e == known {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Journey dimensions
// ─────────────────────────────────────────────────────────────────────────────

// JourneyDimension names one of the five raw intensity axes.
type JourneyDimension string

const (
	ProblemIntensity   JourneyDimension = "problemIntensity"
	SolutionConfidence JourneyDimension = "solutionConfidence"
	InnovationLevel    JourneyDimension = "innovationLevel"
	HealingPotential   JourneyDimension = "healingPotential"
	UncertaintyLevel   JourneyDimension = "uncertaintyLevel"
)

// JourneyOrder is the fixed iteration sequence for dominant-emotion selection;
// the first dimension reaching the maximum wins.
var JourneyOrder = []JourneyDimension{
	ProblemIntensity,
	SolutionConfidence,
	InnovationLevel,
	HealingPotential,
	UncertaintyLevel,
}

// JourneyScores holds the five raw intensities, each expressed as keyword
// hits per 1000 characters of text.  Values are non-negative and unbounded.
type JourneyScores struct {
	ProblemIntensity   float64 `json:"problemIntensity"`
	SolutionConfidence float64 `json:"solutionConfidence"`
	InnovationLevel    float64 `json:"innovationLevel"`
	HealingPotential   float64 `json:"healingPotential"`
	UncertaintyLevel   float64 `json:"uncertaintyLevel"`
}

// Get returns the score for a dimension; unknown dimensions return 0.
func (j JourneyScores) Get(d JourneyDimension) float64 {
	switch d {
	case ProblemIntensity:
		return j.ProblemIntensity
	case SolutionConfidence:
		return j.SolutionConfidence
	case InnovationLevel:
		return j.InnovationLevel
	case HealingPotential:
		return j.HealingPotential
	case UncertaintyLevel:
		return j.UncertaintyLevel
	}
	return 0
}

// Dominant returns the dimension with the maximum score, ties broken by
// JourneyOrder (first maximum wins).  An all-zero journey yields
// ProblemIntensity, the first dimension in the sequence.
func (j JourneyScores) Dominant() JourneyDimension {
	best := JourneyOrder[0]
	bestVal := j.Get(best)
	for _, d := range JourneyOrder[1:] {
		if v := j.Get(d); v > bestVal {
			best, bestVal = d, v
		}
	}
	return best
}

// Max returns the largest of the five scores.
func (j JourneyScores) Max() float64 {
	return j.Get(j.Dominant())
}

// AllZero reports whether every dimension is exactly zero.
func (j JourneyScores) AllZero() bool {
	return j.Max() == 0
}

// Mix rescales the journey into the six-bucket vocabulary.  Each relevant
// journey value is divided by the maximum journey value (or 1 when all are
// zero), yielding values in [0, 1].  HealingPotential feeds both hope and
// healing; that duplication is part of the documented mapping.
func (j JourneyScores) Mix() MixScores {
	max := j.Max()
	if max == 0 {
		max = 1
	}
	return MixScores{
		Hope:         j.HealingPotential / max,
		Confidence:   j.SolutionConfidence / max,
		Breakthrough: j.InnovationLevel / max,
		Healing:      j.HealingPotential / max,
		Tension:      j.ProblemIntensity / max,
		Uncertainty:  j.UncertaintyLevel / max,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Six-bucket mix
// ─────────────────────────────────────────────────────────────────────────────

// MixScores is the six-bucket emotional mix, values in [0, 1].
type MixScores struct {
	Hope         float64 `json:"hope"`
	Confidence   float64 `json:"confidence"`
	Breakthrough float64 `json:"breakthrough"`
	Healing      float64 `json:"healing"`
	Tension      float64 `json:"tension"`
	Uncertainty  float64 `json:"uncertainty"`
}

// Get returns the score for a bucket; unknown buckets return 0.
func (m MixScores) Get(e Emotion) float64 {
	switch e {
	case Hope:
		return m.Hope
	case Confidence:
		return m.Confidence
	case Breakthrough:
		return m.Breakthrough
	case Healing:
		return m.Healing
	case Tension:
		return m.Tension
	case Uncertainty:
		return m.Uncertainty
	}
	return 0
}

// Values returns the six scores in canonical AllEmotions order.
func (m MixScores) Values() []float64 {
	out := make([]float64, 0, len(AllEmotions))
	for _, e := range AllEmotions {
		out = append(out, m.Get(e))
	}
	return out
}

// Top returns up to n emotions ordered by descending score; equal scores keep
// canonical order (sort is stable over AllEmotions).
func (m MixScores) Top(n int) []Emotion {
	ranked := append([]Emotion(nil), AllEmotions...)
	sort.SliceStable(ranked, func(i, k int) bool {
		return m.Get(ranked[i]) > m.Get(ranked[k])
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Variance returns the population variance of the six scores.  Rarity
// derivation is a monotonic function of this value.
func (m MixScores) Variance() float64 {
	vals := m.Values()
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var acc float64
	for _, v := range vals {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(vals))
}

// ─────────────────────────────────────────────────────────────────────────────
// Subspecialty
// ─────────────────────────────────────────────────────────────────────────────

// Subspecialty is one of the seven orthopedic subspecialty categories.
type Subspecialty string

const (
	SportsMedicine     Subspecialty = "sportsMedicine"
	ShoulderElbow      Subspecialty = "shoulderElbow"
	JointReplacement   Subspecialty = "jointReplacement"
	Trauma             Subspecialty = "trauma"
	Spine              Subspecialty = "spine"
	HandUpperExtremity Subspecialty = "handUpperExtremity"
	FootAnkle          Subspecialty = "footAnkle"
)

// AllSubspecialties lists the categories in table-declaration order; the
// classifier's tie-break follows this sequence.
var AllSubspecialties = []Subspecialty{
	SportsMedicine,
	ShoulderElbow,
	JointReplacement,
	Trauma,
	Spine,
	HandUpperExtremity,
	FootAnkle,
}

// ─────────────────────────────────────────────────────────────────────────────
// EmotionalProfile
// ─────────────────────────────────────────────────────────────────────────────

// EmotionalProfile is the central intermediate artifact of the pipeline: the
// emotional quantification of one document.  It may be produced by the
// built-in keyword analyzer or by an external analyzer returning the same
// shape; downstream consumers cannot tell the difference.
type EmotionalProfile struct {
	Journey          JourneyScores    `json:"journey"`
	DominantEmotion  JourneyDimension `json:"dominantEmotion"`
	Mix              MixScores        `json:"emotionalMix"`
	EvidenceStrength float64          `json:"evidenceStrength"`
	TechnicalDensity float64          `json:"technicalDensity"`
	Subspecialty     Subspecialty     `json:"subspecialty"`
}

// DominantBucket maps the dominant journey dimension to its six-bucket
// counterpart, which is what palettes and signature shapes key on.
func (p EmotionalProfile) DominantBucket() Emotion {
	switch p.DominantEmotion {
	case ProblemIntensity:
		return Tension
	case SolutionConfidence:
		return Confidence
	case InnovationLevel:
		return Breakthrough
	case HealingPotential:
		return Healing
	case UncertaintyLevel:
		return Uncertainty
	}
	return Hope
}
