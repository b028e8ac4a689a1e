// Package pdftext isolates PDF text extraction behind a small backend
// interface so the PDF adapter can prefer higher-fidelity extractors and
// degrade through the chain at runtime.  Backends are tried in registration
// order; the naive scanner sits last as the extraction of last resort.
package pdftext

import (
	"bytes"
	"io"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

// Backend extracts plain text from an in-memory PDF document.
type Backend interface {
	// Name identifies the backend in logs and metadata.
	Name() string
	// Extract returns the document's plain text.  An error means this
	// backend could not handle the document; the caller moves on to the
	// next one.
	Extract(data []byte) (string, error)
}

// Available returns the default backend chain, highest fidelity first.
func Available() []Backend {
	return []Backend{readerBackend{}, naiveBackend{}}
}

// Select builds a chain from backend names, preserving the requested order.
// Unknown names are skipped; an empty or fully-unknown list falls back to
// the default chain.
func Select(names []string) []Backend {
	available := Available()
	var chain []Backend
	for _, name := range names {
		for _, b := range available {
			if b.Name() == name {
				chain = append(chain, b)
			}
		}
	}
	if len(chain) == 0 {
		return available
	}
	return chain
}

// ExtractWith runs data through the chain, returning the first successful
// extraction and the backend that produced it.
func ExtractWith(backends []Backend, data []byte) (text, backend string, err error) {
	if len(backends) == 0 {
		return "", "", apperrors.New(apperrors.ErrCodeNoPDFBackend, "no PDF extraction backend configured")
	}
	var lastErr error
	for _, b := range backends {
		out, extractErr := b.Extract(data)
		if extractErr == nil && strings.TrimSpace(out) != "" {
			return out, b.Name(), nil
		}
		if extractErr != nil {
			lastErr = extractErr
		}
	}
	return "", "", apperrors.Wrap(lastErr, apperrors.ErrCodeExtractionDegraded, "all PDF backends failed")
}

// ─────────────────────────────────────────────────────────────────────────────
// ledongthuc/pdf backend
// ─────────────────────────────────────────────────────────────────────────────

// readerBackend extracts through the ledongthuc/pdf reader, which decodes
// content streams properly and is the preferred path.
type readerBackend struct{}

func (readerBackend) Name() string { return "reader" }

func (readerBackend) Extract(data []byte) (text string, err error) {
	// The reader panics on some malformed inputs; a panic here must mean
	// fallthrough to the next backend, not a crashed pipeline.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperrors.Newf(apperrors.ErrCodeExtractionDegraded, "pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExtractionDegraded, "open pdf reader")
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExtractionDegraded, "extract plain text")
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeExtractionDegraded, "read plain text")
	}
	return collapseWhitespace(string(raw)), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// naive literal scanner
// ─────────────────────────────────────────────────────────────────────────────

// naiveBackend scans the raw file for uncompressed string literals, the
// `(...)` show-text operands of PDF content streams.  It recovers nothing
// from compressed streams, but it keeps extraction alive for the simple
// generator output that the reader backend occasionally rejects.
type naiveBackend struct{}

func (naiveBackend) Name() string { return "naive" }

func (naiveBackend) Extract(data []byte) (string, error) {
	var sb strings.Builder
	inLiteral := false
	escaped := false
	var literal []byte

	for _, c := range data {
		if !inLiteral {
			if c == '(' {
				inLiteral = true
				literal = literal[:0]
			}
			continue
		}
		if escaped {
			escaped = false
			literal = append(literal, c)
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case ')':
			inLiteral = false
			if s := string(literal); printable(s) {
				sb.WriteString(s)
				sb.WriteByte(' ')
			}
		default:
			literal = append(literal, c)
		}
	}

	out := collapseWhitespace(sb.String())
	if out == "" {
		return "", apperrors.New(apperrors.ErrCodeExtractionDegraded, "no text literals found")
	}
	return out, nil
}

// printable reports whether s looks like human text rather than binary
// operand noise.
func printable(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, r := range s {
		if r < 0x20 && r != '\t' {
			return false
		}
		if r > 0x7e {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
