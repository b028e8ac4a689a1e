package adapters

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"

	"github.com/arthrokinetix/akx-engine/internal/adapters/pdftext"
)

// Adapter is the per-format extraction capability set.  Implementations never
// return errors; every method degrades to a best-effort result and reports
// degradation through the boolean.
type Adapter interface {
	// ContentType tags the format this adapter handles.
	ContentType() article.ContentType
	// ExtractText returns the document's plain text.  degraded is true when
	// extraction fell back to the crudest path for the format.
	ExtractText(raw []byte) (text string, degraded bool)
	// ExtractStructure returns the detected document structure, always with a
	// non-empty Sections list.
	ExtractStructure(raw []byte) article.Structure
	// ExtractMetadata returns descriptive fields, including format-specific
	// provenance in Extra.
	ExtractMetadata(raw []byte) article.Metadata
}

// Option configures adapter construction.
type Option func(*options)

type options struct {
	defaultLanguage string
	pdfBackends     []pdftext.Backend
}

// WithDefaultLanguage sets the language reported for inputs long enough to
// judge.  Defaults to "english".
func WithDefaultLanguage(lang string) Option {
	return func(o *options) { o.defaultLanguage = lang }
}

// WithPDFBackends overrides the PDF extraction backend chain.
func WithPDFBackends(backends ...pdftext.Backend) Option {
	return func(o *options) { o.pdfBackends = backends }
}

func buildOptions(opts []Option) options {
	o := options{
		defaultLanguage: "english",
		pdfBackends:     pdftext.Available(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New constructs the adapter for a content-type tag.  Unknown tags fail
// explicitly with an UnsupportedContentType error rather than defaulting.
func New(contentType article.ContentType, opts ...Option) (Adapter, error) {
	o := buildOptions(opts)
	switch contentType {
	case article.TypeHTML:
		return &htmlAdapter{opts: o}, nil
	case article.TypeText:
		return &textAdapter{opts: o}, nil
	case article.TypePDF:
		return &pdfAdapter{opts: o}, nil
	default:
		return nil, apperrors.UnsupportedContentType(string(contentType))
	}
}

// Adapt runs the full extraction for one input and assembles the normalized
// document.  It fails only for unknown content-type tags; supported formats
// always produce a document, degraded if necessary.
func Adapt(raw []byte, contentType article.ContentType, opts ...Option) (article.NormalizedDocument, error) {
	adapter, err := New(contentType, opts...)
	if err != nil {
		return article.NormalizedDocument{}, err
	}

	text, degraded := adapter.ExtractText(raw)
	if strings.TrimSpace(text) == "" {
		// Text is never empty for non-empty input.
		text = strings.TrimSpace(string(raw))
		degraded = degraded || text != ""
	}
	// PDF extractors in particular emit combining sequences; analysis keyword
	// matching assumes composed forms.
	text = norm.NFC.String(text)

	structure := adapter.ExtractStructure(raw)
	if len(structure.Sections) == 0 {
		structure.Sections = deriveSections(structure.Headings, text)
	}

	return article.NormalizedDocument{
		ContentType: contentType,
		Text:        text,
		Structure:   structure,
		Metadata:    adapter.ExtractMetadata(raw),
		Degraded:    degraded,
	}, nil
}
