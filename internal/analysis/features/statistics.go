package features

import (
	"regexp"
	"strconv"
	"strings"
)

// StatKind names one of the six statistical mention families.
type StatKind string

const (
	StatPercentage         StatKind = "percentage"
	StatRatio              StatKind = "ratio"
	StatPValue             StatKind = "pValue"
	StatConfidenceInterval StatKind = "confidenceInterval"
	StatFollowUp           StatKind = "followUp"
	StatSampleSize         StatKind = "sampleSize"
)

// StatMention is one matched statistical expression.
type StatMention struct {
	Kind         StatKind `json:"kind"`
	Raw          string   `json:"raw"`
	Value        float64  `json:"value"`
	Significance float64  `json:"significance"` // [0,1] heuristic
}

// statFamily couples a pattern with its value parser and significance
// heuristic.  Families are scanned in declaration order; overlapping matches
// across families are allowed (a "95% CI" is both a percentage and an
// interval by design).
type statFamily struct {
	kind    StatKind
	pattern *regexp.Regexp
	parse   func(match []string) float64
	score   func(value float64) float64
}

var statFamilies = []statFamily{
	{
		kind:    StatPercentage,
		pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*%`),
		parse:   parseGroup1,
		score: func(v float64) float64 {
			// Extreme percentages (near 0 or 100) read as stronger claims.
			d := v - 50
			if d < 0 {
				d = -d
			}
			return clamp01(0.3 + d/50*0.7)
		},
	},
	{
		kind:    StatRatio,
		pattern: regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*:\s*\d+(?:\.\d+)?\b`),
		parse:   parseGroup1,
		score:   func(float64) float64 { return 0.5 },
	},
	{
		kind:    StatPValue,
		pattern: regexp.MustCompile(`(?i)\bp\s*[<=≤]\s*(0?\.\d+)`),
		parse:   parseGroup1,
		score: func(v float64) float64 {
			// Smaller p reads as stronger evidence.
			switch {
			case v <= 0.001:
				return 1.0
			case v <= 0.01:
				return 0.9
			case v <= 0.05:
				return 0.75
			default:
				return 0.3
			}
		},
	},
	{
		kind:    StatConfidenceInterval,
		pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*%\s*(?:confidence\s+interval|ci)\b`),
		parse:   parseGroup1,
		score: func(v float64) float64 {
			return clamp01(v / 100)
		},
	},
	{
		kind:    StatFollowUp,
		pattern: regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)[\s-]*(?:year|month|week|day)s?\s*(?:of\s+)?follow[\s-]?up\b`),
		parse:   parseGroup1,
		score: func(v float64) float64 {
			// Longer follow-up, stronger finding; saturates at 10 units.
			return clamp01(0.4 + v/10*0.6)
		},
	},
	{
		kind:    StatSampleSize,
		pattern: regexp.MustCompile(`(?i)\bn\s*=\s*(\d+)\b`),
		parse:   parseGroup1,
		score: func(v float64) float64 {
			switch {
			case v >= 1000:
				return 1.0
			case v >= 100:
				return 0.8
			case v >= 30:
				return 0.6
			default:
				return 0.4
			}
		},
	},
}

func parseGroup1(match []string) float64 {
	if len(match) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(match[1]), 64)
	if err != nil {
		return 0
	}
	return v
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

// ExtractStatistics scans text for all six statistical mention families and
// returns the matches in family-then-position order.  Never fails; text with
// no statistics yields an empty slice.
func ExtractStatistics(text string) []StatMention {
	var out []StatMention
	for _, fam := range statFamilies {
		for _, match := range fam.pattern.FindAllStringSubmatch(text, -1) {
			v := fam.parse(match)
			out = append(out, StatMention{
				Kind:         fam.kind,
				Raw:          strings.TrimSpace(match[0]),
				Value:        v,
				Significance: fam.score(v),
			})
		}
	}
	return out
}
