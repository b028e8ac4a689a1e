package adapters

import (
	"regexp"
	"strings"

	"github.com/arthrokinetix/akx-engine/pkg/types/article"
)

// textAdapter handles plain-text input with line-shape heuristics: all-caps
// lines and short lines preceding blank ones become headings, marker-prefixed
// runs become lists, everything else groups into paragraphs.
type textAdapter struct {
	opts options
}

func (a *textAdapter) ContentType() article.ContentType { return article.TypeText }

func (a *textAdapter) ExtractText(raw []byte) (string, bool) {
	return strings.TrimSpace(string(raw)), false
}

func (a *textAdapter) ExtractStructure(raw []byte) article.Structure {
	text, _ := a.ExtractText(raw)
	structure := textStructure(text)
	structure.Sections = deriveSections(structure.Headings, text)
	return structure
}

func (a *textAdapter) ExtractMetadata(raw []byte) article.Metadata {
	text, _ := a.ExtractText(raw)
	words := countWords(text)
	structure := textStructure(text)

	title := ""
	if len(structure.Headings) > 0 {
		title = structure.Headings[0].Text
	} else if len(structure.Paragraphs) > 0 {
		title = firstLine(structure.Paragraphs[0])
	}

	return article.Metadata{
		Title:           title,
		WordCount:       words,
		ParagraphCount:  len(structure.Paragraphs),
		SentenceCount:   countSentences(text),
		ReadTimeMinutes: readTimeMinutes(words),
		Language:        detectLanguage(text, a.opts.defaultLanguage),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Line-shape heuristics (shared with the PDF adapter)
// ─────────────────────────────────────────────────────────────────────────────

// headingMaxLen bounds how long a line can be and still read as a heading.
const headingMaxLen = 60

var (
	orderedMarkerPattern   = regexp.MustCompile(`^(?:\d+[.)]|[a-zA-Z][.)])\s+`)
	unorderedMarkerPattern = regexp.MustCompile(`^[-*•]\s+`)
)

// textStructure applies line-shape heuristics to flat text.  Sections are
// left empty; callers derive them from the headings afterwards.
func textStructure(text string) article.Structure {
	lines := strings.Split(text, "\n")

	var structure article.Structure
	var paragraph []string
	var list *article.List

	flushParagraph := func() {
		if len(paragraph) > 0 {
			structure.Paragraphs = append(structure.Paragraphs, strings.Join(paragraph, " "))
			paragraph = paragraph[:0]
		}
	}
	flushList := func() {
		if list != nil && len(list.Items) > 0 {
			structure.Lists = append(structure.Lists, *list)
		}
		list = nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flushParagraph()
			flushList()
			continue
		}

		if item, ordered, ok := listItem(trimmed); ok {
			flushParagraph()
			if list == nil || list.Ordered != ordered {
				flushList()
				list = &article.List{Ordered: ordered}
			}
			list.Items = append(list.Items, item)
			continue
		}
		flushList()

		if level, ok := headingLine(trimmed, nextLineBlank(lines, i)); ok {
			flushParagraph()
			structure.Headings = append(structure.Headings, article.Heading{Level: level, Text: trimmed})
			continue
		}

		paragraph = append(paragraph, trimmed)
	}
	flushParagraph()
	flushList()
	return structure
}

// headingLine classifies a non-blank line: all-caps lines are level-1
// headings, short lines followed by a blank line are level-2.
func headingLine(line string, followedByBlank bool) (int, bool) {
	if len(line) > headingMaxLen {
		return 0, false
	}
	if allCaps(line) {
		return 1, true
	}
	if followedByBlank && !strings.ContainsAny(line, ".!?") {
		return 2, true
	}
	return 0, false
}

// allCaps reports whether line contains letters and none of them lowercase.
func allCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// listItem strips a list marker, reporting the item text and ordering.
func listItem(line string) (item string, ordered, ok bool) {
	if m := orderedMarkerPattern.FindString(line); m != "" {
		return strings.TrimSpace(line[len(m):]), true, true
	}
	if m := unorderedMarkerPattern.FindString(line); m != "" {
		return strings.TrimSpace(line[len(m):]), false, true
	}
	return "", false, false
}

func nextLineBlank(lines []string, i int) bool {
	return i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == ""
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
