// Package journey computes the five-dimension emotional journey of a
// document from fixed keyword densities, and assembles the full fallback
// EmotionalProfile used whenever no external analyzer is wired in.  All
// functions are pure scans over the input text and always succeed.
package journey

import (
	"github.com/arthrokinetix/akx-engine/internal/analysis/features"
	"github.com/arthrokinetix/akx-engine/internal/analysis/subspecialty"
	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// journeyKeywords maps each journey dimension to its fixed marker vocabulary.
// Matching is case-insensitive and whole-word, sharing the exact semantics of
// features.CountWord so "recovered" never feeds "recover"-style prefixes.
var journeyKeywords = map[emotion.JourneyDimension][]string{
	emotion.ProblemIntensity: {
		"complication", "complications", "failure", "pain", "injury",
		"risk", "degeneration", "morbidity",
	},
	emotion.SolutionConfidence: {
		"effective", "success", "successful", "improvement", "improved",
		"reliable", "stable", "excellent",
	},
	emotion.InnovationLevel: {
		"novel", "innovative", "innovation", "breakthrough", "emerging",
		"advanced", "cutting-edge", "pioneering",
	},
	emotion.HealingPotential: {
		"recovery", "healing", "rehabilitation", "restoration",
		"regeneration", "recovered", "healed", "rehab",
	},
	emotion.UncertaintyLevel: {
		"unclear", "unknown", "uncertain", "controversial",
		"inconclusive", "variable", "debate", "conflicting",
	},
}

// evidence heuristic scaling: statistical significance saturates the score at
// a sum of 5; each estimated citation adds 1/40.
const (
	evidenceStatScale     = 5.0
	evidenceCitationScale = 40.0
	technicalDensityScale = 50.0
)

// Analyze counts marker hits per dimension and converts each count to a
// per-mille density: hits / max(len(text), 1) × 1000.  Densities are
// non-negative and unbounded.
func Analyze(text string) emotion.JourneyScores {
	length := len(text)
	if length < 1 {
		length = 1
	}

	density := func(d emotion.JourneyDimension) float64 {
		var hits int
		for _, kw := range journeyKeywords[d] {
			hits += features.CountWord(text, kw)
		}
		return float64(hits) / float64(length) * 1000
	}

	return emotion.JourneyScores{
		ProblemIntensity:   density(emotion.ProblemIntensity),
		SolutionConfidence: density(emotion.SolutionConfidence),
		InnovationLevel:    density(emotion.InnovationLevel),
		HealingPotential:   density(emotion.HealingPotential),
		UncertaintyLevel:   density(emotion.UncertaintyLevel),
	}
}

// Classify builds the complete fallback EmotionalProfile for a document:
// journey densities, dominant dimension, rescaled six-bucket mix, heuristic
// evidence/technical scalars, and the subspecialty classification.
//
// When every journey density is zero the document carries no emotional
// signal worth differentiating on, so the quality scalars settle at a
// neutral 0.5 and the subspecialty falls back to sports medicine.  That is a
// legitimate content shape (very short or non-clinical text), not an error.
func Classify(text string) emotion.EmotionalProfile {
	journey := Analyze(text)

	profile := emotion.EmotionalProfile{
		Journey:         journey,
		DominantEmotion: journey.Dominant(),
		Mix:             journey.Mix(),
	}

	if journey.AllZero() {
		profile.EvidenceStrength = 0.5
		profile.TechnicalDensity = 0.5
		profile.Subspecialty = emotion.SportsMedicine
		return profile
	}

	profile.EvidenceStrength = evidenceStrength(text)
	profile.TechnicalDensity = technicalDensity(text)
	profile.Subspecialty = subspecialty.Classify(text)
	return profile
}

// evidenceStrength aggregates statistical mention significance with the
// citation count estimate.  Only deterministic citation features (the count)
// participate; the pseudo-random importance/impact scores stay informational.
func evidenceStrength(text string) float64 {
	var statSig float64
	for _, m := range features.ExtractStatistics(text) {
		statSig += m.Significance
	}
	citations := len(features.ExtractCitations(text, random.New(0)))
	return clamp01(statSig/evidenceStatScale + float64(citations)/evidenceCitationScale)
}

// technicalDensity is the weighted medical-term significance per 1000
// characters, scaled into [0,1].
func technicalDensity(text string) float64 {
	length := len(text)
	if length < 1 {
		length = 1
	}
	perMille := features.TotalSignificance(features.ExtractTerms(text)) / float64(length) * 1000
	return clamp01(perMille / technicalDensityScale)
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
