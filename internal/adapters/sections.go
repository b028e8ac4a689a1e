// Package adapters normalizes raw article input (HTML, plain text, PDF) into
// the shared NormalizedDocument shape.  Adapters never fail for a supported
// format; every extraction aspect degrades to a best-effort default instead,
// and the Degraded flag on the output records that this happened.
package adapters

import (
	"math"
	"strings"

	"github.com/arthrokinetix/akx-engine/pkg/types/article"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// sectionVocabulary is the fixed keyword set the shared section detector
// matches headings and lines against, in priority order.
var sectionVocabulary = []string{
	"introduction", "background", "methods", "methodology", "results",
	"discussion", "conclusions", "conclusion", "summary", "abstract",
	"overview", "review", "analysis", "findings", "recommendations",
}

// sectionTones maps each vocabulary keyword to the a-priori emotional
// coloring its branch receives.  Every adapter uses this identical lookup.
var sectionTones = map[string]emotion.Emotion{
	"introduction":    emotion.Confidence,
	"background":      emotion.Confidence,
	"methods":         emotion.Breakthrough,
	"methodology":     emotion.Breakthrough,
	"results":         emotion.Healing,
	"discussion":      emotion.Hope,
	"conclusion":      emotion.Hope,
	"conclusions":     emotion.Hope,
	"summary":         emotion.Hope,
	"abstract":        emotion.Confidence,
	"overview":        emotion.Confidence,
	"review":          emotion.Uncertainty,
	"analysis":        emotion.Breakthrough,
	"findings":        emotion.Healing,
	"recommendations": emotion.Hope,
}

// toneFor returns the emotional tone for a section title, defaulting to hope
// when no vocabulary keyword appears.
func toneFor(title string) emotion.Emotion {
	lower := strings.ToLower(title)
	for _, kw := range sectionVocabulary {
		if strings.Contains(lower, kw) {
			return sectionTones[kw]
		}
	}
	return emotion.Hope
}

// defaultSections are the four fixed sections substituted when no structure
// was detectable, so downstream tree generation never receives an empty list.
func defaultSections() []article.ContentSection {
	return []article.ContentSection{
		{Title: "Introduction", Level: 1, Importance: 0.8, Complexity: 0.5, EmotionalTone: emotion.Confidence},
		{Title: "Main Content", Level: 1, Importance: 0.9, Complexity: 0.7, EmotionalTone: emotion.Breakthrough},
		{Title: "Results", Level: 1, Importance: 0.85, Complexity: 0.6, EmotionalTone: emotion.Healing},
		{Title: "Conclusion", Level: 1, Importance: 0.7, Complexity: 0.4, EmotionalTone: emotion.Hope},
	}
}

// sectionFromTitle builds one ContentSection with heuristic weights: shallow
// headings matter more, longer titles read as more complex.
func sectionFromTitle(title string, level int) article.ContentSection {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	importance := clamp01(1.05 - 0.15*float64(level))
	complexity := clamp01(0.3 + float64(len(title))/100)
	return article.ContentSection{
		Title:         strings.TrimSpace(title),
		Level:         level,
		Importance:    importance,
		Complexity:    complexity,
		EmotionalTone: toneFor(title),
	}
}

// deriveSections produces the final section list for a document: detected
// headings first, then the keyword scan over the text, then the four fixed
// defaults.  The result is always non-empty and capped at MaxSections.
func deriveSections(headings []article.Heading, text string) []article.ContentSection {
	var sections []article.ContentSection
	for _, h := range headings {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		sections = append(sections, sectionFromTitle(h.Text, h.Level))
		if len(sections) == article.MaxSections {
			return sections
		}
	}
	if len(sections) > 0 {
		return sections
	}

	sections = keywordSections(text)
	if len(sections) > 0 {
		return sections
	}
	return defaultSections()
}

// keywordSections scans text line by line for short lines carrying a section
// vocabulary keyword.  This is the shared fallback detector all three
// adapters rely on when format-specific structure detection yields nothing.
func keywordSections(text string) []article.ContentSection {
	var sections []article.ContentSection
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > 60 {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range sectionVocabulary {
			if !strings.Contains(lower, kw) || seen[kw] {
				continue
			}
			seen[kw] = true
			sections = append(sections, sectionFromTitle(trimmed, 2))
			break
		}
		if len(sections) == article.MaxSections {
			break
		}
	}
	return sections
}

// ─────────────────────────────────────────────────────────────────────────────
// Metadata helpers
// ─────────────────────────────────────────────────────────────────────────────

// wordsPerMinute is the read-time divisor for an average reader.
const wordsPerMinute = 200

// minLanguageSampleLen is the character count below which language detection
// refuses to guess.
const minLanguageSampleLen = 100

func countWords(text string) int {
	return len(strings.Fields(text))
}

func countSentences(text string) int {
	var n int
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			n++
		}
	}
	return n
}

// readTimeMinutes is max(1, round(words/200)).
func readTimeMinutes(words int) int {
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// detectLanguage returns "unknown" for inputs too short to judge, otherwise
// the configured default.
func detectLanguage(text, defaultLanguage string) string {
	if len(text) < minLanguageSampleLen {
		return "unknown"
	}
	return defaultLanguage
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
