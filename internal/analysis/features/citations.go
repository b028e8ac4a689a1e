package features

import (
	"regexp"

	"github.com/arthrokinetix/akx-engine/pkg/random"
)

// maxCitations caps the citation estimate; beyond this the count stops being
// a useful differentiator between papers.
const maxCitations = 20

var (
	// yearPattern matches plausible publication years 1900–2099.
	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// etAlPattern matches "Surname et al." author references.
	etAlPattern = regexp.MustCompile(`\b[A-Z][a-z]+\s+et\s+al\.?`)
)

// Citation is one estimated literature reference.  Importance and impact are
// informational pseudo-random scores drawn from the injected source; they
// never feed back into emotion scoring.
type Citation struct {
	Raw        string  `json:"raw"`
	Importance float64 `json:"importance"` // [0.5, 1.0)
	Impact     float64 `json:"impact"`     // [1, 10)
}

// ExtractCitations estimates the document's citations by combining 4-digit
// year mentions with "Surname et al." patterns, capped at 20.  src drives
// the informational importance/impact scores; a nil src falls back to a
// time-seeded source.
func ExtractCitations(text string, src random.Source) []Citation {
	if src == nil {
		src = random.NewTimeSeeded()
	}

	var raws []string
	raws = append(raws, yearPattern.FindAllString(text, -1)...)
	raws = append(raws, etAlPattern.FindAllString(text, -1)...)
	if len(raws) > maxCitations {
		raws = raws[:maxCitations]
	}

	out := make([]Citation, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Citation{
			Raw:        raw,
			Importance: random.InRange(src, 0.5, 1.0),
			Impact:     random.InRange(src, 1.0, 10.0),
		})
	}
	return out
}
