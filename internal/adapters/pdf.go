package adapters

import (
	"encoding/base64"
	"os"
	"regexp"
	"strings"

	"github.com/arthrokinetix/akx-engine/pkg/types/article"

	"github.com/arthrokinetix/akx-engine/internal/adapters/pdftext"
)

// pdfFailurePlaceholder is returned as document text when every extraction
// backend fails; downstream analysis still gets a non-empty string.
const pdfFailurePlaceholder = "PDF text extraction failed; the document content could not be read."

// linesPerPage is the rough line density used for page-count estimation from
// flattened text.
const linesPerPage = 45

// base64Pattern recognizes base64-shaped input.  Checked before file-path
// interpretation so an encoded document is never mistaken for a path.
var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/\r\n]+={0,2}\s*$`)

// pdfAdapter handles PDF input in three forms: raw bytes, base64-encoded
// bytes, and filesystem paths.  Extraction runs through the configured
// backend chain, highest fidelity first.
type pdfAdapter struct {
	opts options
}

func (a *pdfAdapter) ContentType() article.ContentType { return article.TypePDF }

// resolveInput turns any accepted input form into raw PDF bytes.
func (a *pdfAdapter) resolveInput(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	if isPDFBytes(raw) {
		return raw
	}
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) >= 16 && len(trimmed)%4 == 0 && base64Pattern.MatchString(trimmed) {
		compact := strings.NewReplacer("\r", "", "\n", "").Replace(trimmed)
		if decoded, err := base64.StdEncoding.DecodeString(compact); err == nil && isPDFBytes(decoded) {
			return decoded
		}
	}
	if looksLikePath(trimmed) {
		if data, err := os.ReadFile(trimmed); err == nil {
			return data
		}
	}
	return raw
}

func (a *pdfAdapter) ExtractText(raw []byte) (string, bool) {
	data := a.resolveInput(raw)
	text, _, err := pdftext.ExtractWith(a.opts.pdfBackends, data)
	if err != nil || strings.TrimSpace(text) == "" {
		return pdfFailurePlaceholder, true
	}
	return text, false
}

func (a *pdfAdapter) ExtractStructure(raw []byte) article.Structure {
	text, degraded := a.ExtractText(raw)
	if degraded {
		return article.Structure{Sections: defaultSections()}
	}
	structure := textStructure(text)
	structure.Sections = deriveSections(structure.Headings, text)
	return structure
}

func (a *pdfAdapter) ExtractMetadata(raw []byte) article.Metadata {
	data := a.resolveInput(raw)
	text, backend, err := pdftext.ExtractWith(a.opts.pdfBackends, data)
	degraded := err != nil || strings.TrimSpace(text) == ""
	if degraded {
		text = pdfFailurePlaceholder
		backend = ""
	}
	words := 0
	if !degraded {
		words = countWords(text)
	}

	title := ""
	if !degraded {
		structure := textStructure(text)
		if len(structure.Headings) > 0 {
			title = structure.Headings[0].Text
		}
	}

	return article.Metadata{
		Title:           title,
		WordCount:       words,
		ParagraphCount:  len(strings.Split(text, "\n\n")),
		SentenceCount:   countSentences(text),
		ReadTimeMinutes: readTimeMinutes(words),
		Language:        detectLanguage(text, a.opts.defaultLanguage),
		Extra: map[string]interface{}{
			"pageCountEstimate": estimatePageCount(text),
			"degraded":          degraded,
			"backend":           backend,
		},
	}
}

// estimatePageCount guesses pages from line density of the flattened text.
func estimatePageCount(text string) int {
	lines := strings.Count(text, "\n") + 1
	pages := lines / linesPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

func isPDFBytes(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}

// looksLikePath filters out multi-line or binary input before touching the
// filesystem.
func looksLikePath(s string) bool {
	if s == "" || len(s) > 4096 {
		return false
	}
	return !strings.ContainsAny(s, "\n\x00")
}
