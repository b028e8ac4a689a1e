// Package features provides stateless text feature extraction over normalized
// document text: medical terminology frequencies, statistical mentions, and
// citation estimates.  Every function is a pure scan of its input; extraction
// never fails — an absent signal yields an empty collection, not an error.
package features

import (
	"regexp"
	"strings"
	"sync"
)

// TermCategory names one of the four medical-term groups.
type TermCategory string

const (
	CategoryProcedures TermCategory = "procedures"
	CategoryAnatomy    TermCategory = "anatomy"
	CategoryOutcomes   TermCategory = "outcomes"
	CategoryResearch   TermCategory = "research"
)

// termCategories lists the groups in canonical order.
var termCategories = []TermCategory{
	CategoryProcedures,
	CategoryAnatomy,
	CategoryOutcomes,
	CategoryResearch,
}

// categoryWeights is the fixed per-category significance multiplier.
// Procedures signal the strongest clinical content, hence the highest weight.
var categoryWeights = map[TermCategory]float64{
	CategoryProcedures: 3.0,
	CategoryAnatomy:    2.0,
	CategoryOutcomes:   2.5,
	CategoryResearch:   2.0,
}

// categoryTerms is the fixed term vocabulary.  Multi-word entries are
// matched as phrases; all matching is case-insensitive and word-boundary
// anchored so "hand" never matches inside "handle".
var categoryTerms = map[TermCategory][]string{
	CategoryProcedures: {
		"surgery", "surgical", "arthroscopy", "arthroscopic", "repair",
		"reconstruction", "arthroplasty", "fixation", "graft", "implant",
		"osteotomy", "fusion", "release", "debridement", "tenotomy",
	},
	CategoryAnatomy: {
		"knee", "shoulder", "hip", "ankle", "elbow", "wrist", "spine",
		"ligament", "tendon", "cartilage", "meniscus", "joint", "bone",
		"muscle", "labrum", "rotator cuff", "acl", "mcl", "femur", "tibia",
	},
	CategoryOutcomes: {
		"outcome", "outcomes", "success", "recovery", "healing",
		"improvement", "satisfaction", "function", "range of motion",
		"return to play", "pain relief", "survival",
	},
	CategoryResearch: {
		"study", "trial", "cohort", "randomized", "meta-analysis",
		"systematic review", "follow-up", "evidence", "analysis",
		"prospective", "retrospective", "registry",
	},
}

// TermFrequency is the per-category aggregation of term hits.
type TermFrequency struct {
	Category     TermCategory   `json:"category"`
	Counts       map[string]int `json:"counts"`
	TotalCount   int            `json:"totalCount"`
	Weight       float64        `json:"weight"`
	Significance float64        `json:"significance"` // TotalCount × Weight
}

// term pattern cache — patterns are fixed at init time, compiled lazily once.
var (
	termPatternsOnce sync.Once
	termPatterns     map[TermCategory]map[string]*regexp.Regexp
)

func compileTermPatterns() {
	termPatterns = make(map[TermCategory]map[string]*regexp.Regexp, len(categoryTerms))
	for cat, terms := range categoryTerms {
		m := make(map[string]*regexp.Regexp, len(terms))
		for _, term := range terms {
			m[term] = wordPattern(term)
		}
		termPatterns[cat] = m
	}
}

// wordPattern compiles a case-insensitive, word-boundary-anchored pattern for
// a term or phrase.  Phrase whitespace matches any run of whitespace.
func wordPattern(term string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(term)
	escaped = strings.ReplaceAll(escaped, ` `, `\s+`)
	return regexp.MustCompile(`(?i)\b` + escaped + `\b`)
}

// CountWord returns the number of case-insensitive whole-word occurrences of
// term in text.  Exported because the subspecialty classifier and journey
// analyzer share the exact same matching semantics.
func CountWord(text, term string) int {
	return len(wordPattern(term).FindAllStringIndex(text, -1))
}

// ExtractTerms scans text and returns one TermFrequency per category, in
// canonical category order.  Categories with no hits are still present with
// zero counts so downstream density heuristics have a stable shape.
func ExtractTerms(text string) []TermFrequency {
	termPatternsOnce.Do(compileTermPatterns)

	out := make([]TermFrequency, 0, len(termCategories))
	for _, cat := range termCategories {
		freq := TermFrequency{
			Category: cat,
			Counts:   make(map[string]int),
			Weight:   categoryWeights[cat],
		}
		for term, pat := range termPatterns[cat] {
			n := len(pat.FindAllStringIndex(text, -1))
			if n > 0 {
				freq.Counts[term] = n
				freq.TotalCount += n
			}
		}
		freq.Significance = float64(freq.TotalCount) * freq.Weight
		out = append(out, freq)
	}
	return out
}

// TotalSignificance sums significance across all categories.
func TotalSignificance(freqs []TermFrequency) float64 {
	var total float64
	for _, f := range freqs {
		total += f.Significance
	}
	return total
}

// TotalTermCount sums raw hit counts across all categories.
func TotalTermCount(freqs []TermFrequency) int {
	var total int
	for _, f := range freqs {
		total += f.TotalCount
	}
	return total
}
