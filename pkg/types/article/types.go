// Package article defines the normalized document record produced by the
// content adapters.  Whatever the input format (HTML, plain text, PDF), the
// rest of the pipeline consumes exactly this one closed shape.
package article

import (
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// MaxSections caps the number of derived content sections per document.
const MaxSections = 6

// ContentType tags the three supported input formats.
type ContentType string

const (
	TypeHTML ContentType = "html"
	TypeText ContentType = "text"
	TypePDF  ContentType = "pdf"
)

// Heading is one detected document heading.
type Heading struct {
	Level int    `json:"level"` // 1–6
	Text  string `json:"text"`
}

// List is one detected list with its items.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// Table is one detected table, first row treated as header when present.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// ContentSection is one of up to six logical sections derived from the
// document's structure.  Each section later becomes one tree branch, so it
// carries an a-priori emotional coloring alongside its layout weights.
type ContentSection struct {
	Title         string          `json:"title"`
	Level         int             `json:"level"`
	Importance    float64         `json:"importance"` // [0,1], drives branch length
	Complexity    float64         `json:"complexity"` // [0,1], drives branch thickness
	EmotionalTone emotion.Emotion `json:"emotionalTone"`
}

// Structure holds everything the adapters detected about document shape.
type Structure struct {
	Headings   []Heading        `json:"headings"`
	Paragraphs []string         `json:"paragraphs"`
	Lists      []List           `json:"lists"`
	Tables     []Table          `json:"tables"`
	Sections   []ContentSection `json:"sections"` // 0–6 entries
}

// Metadata carries descriptive fields about the document.  Common fields are
// typed; format-specific provenance (page count for PDF, link count for HTML)
// lives in Extra.
type Metadata struct {
	Title           string                 `json:"title"`
	WordCount       int                    `json:"wordCount"`
	ParagraphCount  int                    `json:"paragraphCount"`
	SentenceCount   int                    `json:"sentenceCount"`
	ReadTimeMinutes int                    `json:"readTimeMinutes"`
	Language        string                 `json:"language"`
	Extra           map[string]interface{} `json:"extra,omitempty"`
}

// NormalizedDocument is the adapter output: cleaned text plus detected
// structure and metadata.  Instances are created once per input and treated
// as immutable afterwards.  Text is never empty for non-empty input; on any
// parse failure the adapters fall back to the crudest extraction for their
// format, and Degraded records that this happened.
type NormalizedDocument struct {
	ContentType ContentType `json:"contentType"`
	Text        string      `json:"text"`
	Structure   Structure   `json:"structure"`
	Metadata    Metadata    `json:"metadata"`

	// Degraded is true when any extraction aspect fell back to defaults.
	// Informational only; a degraded document is still valid.
	Degraded bool `json:"degraded,omitempty"`
}
