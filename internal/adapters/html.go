package adapters

import (
	"bytes"
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/arthrokinetix/akx-engine/pkg/types/article"
)

// htmlAdapter handles HTML input by walking the real parse tree for
// headings, paragraphs, lists, tables, and link counts.  When parsing fails
// or yields nothing it strips tags with a permissive regex instead.
type htmlAdapter struct {
	opts options
}

var (
	tagStripPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	scriptStylePattern = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
)

// skipElements are subtrees whose text never belongs to the article body.
var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true,
	"head": true, "nav": true, "footer": true,
}

func (a *htmlAdapter) ContentType() article.ContentType { return article.TypeHTML }

func (a *htmlAdapter) ExtractText(raw []byte) (string, bool) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err == nil {
		var sb strings.Builder
		collectText(doc, &sb)
		if text := collapseSpace(sb.String()); text != "" {
			return text, false
		}
	}
	return stripTags(string(raw)), true
}

func (a *htmlAdapter) ExtractStructure(raw []byte) article.Structure {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		text := stripTags(string(raw))
		return article.Structure{Sections: deriveSections(nil, text)}
	}

	var w htmlWalker
	w.walk(doc)

	structure := article.Structure{
		Headings:   w.headings,
		Paragraphs: w.paragraphs,
		Lists:      w.lists,
		Tables:     w.tables,
	}
	text, _ := a.ExtractText(raw)
	structure.Sections = deriveSections(structure.Headings, text)
	return structure
}

func (a *htmlAdapter) ExtractMetadata(raw []byte) article.Metadata {
	text, _ := a.ExtractText(raw)
	words := countWords(text)

	var w htmlWalker
	if doc, err := html.Parse(bytes.NewReader(raw)); err == nil {
		w.walk(doc)
	}

	title := w.title
	if title == "" && len(w.headings) > 0 {
		title = w.headings[0].Text
	}

	return article.Metadata{
		Title:           title,
		WordCount:       words,
		ParagraphCount:  len(w.paragraphs),
		SentenceCount:   countSentences(text),
		ReadTimeMinutes: readTimeMinutes(words),
		Language:        detectLanguage(text, a.opts.defaultLanguage),
		Extra: map[string]interface{}{
			"linkCount": w.linkCount,
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Parse-tree walking
// ─────────────────────────────────────────────────────────────────────────────

type htmlWalker struct {
	title      string
	headings   []article.Heading
	paragraphs []string
	lists      []article.List
	tables     []article.Table
	linkCount  int
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if w.title == "" {
				w.title = nodeText(n)
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := nodeText(n); text != "" {
				w.headings = append(w.headings, article.Heading{
					Level: int(n.Data[1] - '0'),
					Text:  text,
				})
			}
			return
		case "p":
			if text := nodeText(n); text != "" {
				w.paragraphs = append(w.paragraphs, text)
			}
			return
		case "ul", "ol":
			if list := listFromNode(n); len(list.Items) > 0 {
				w.lists = append(w.lists, list)
			}
			return
		case "table":
			if table := tableFromNode(n); len(table.Rows) > 0 || len(table.Headers) > 0 {
				w.tables = append(w.tables, table)
			}
			return
		case "a":
			w.linkCount++
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func listFromNode(n *html.Node) article.List {
	list := article.List{Ordered: n.Data == "ol"}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			if text := nodeText(c); text != "" {
				list.Items = append(list.Items, text)
			}
		}
	}
	return list
}

func tableFromNode(n *html.Node) article.Table {
	var table article.Table
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var cells []string
			header := false
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.Data {
				case "th":
					header = true
					cells = append(cells, nodeText(c))
				case "td":
					cells = append(cells, nodeText(c))
				}
			}
			if len(cells) == 0 {
				return
			}
			if header && table.Headers == nil {
				table.Headers = cells
				return
			}
			table.Rows = append(table.Rows, cells)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return table
}

// collectText accumulates visible text, skipping non-content subtrees.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && skipElements[n.Data] {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return collapseSpace(sb.String())
}

// stripTags is the crudest possible extraction: drop script/style bodies,
// strip every tag, unescape entities.
func stripTags(raw string) string {
	out := scriptStylePattern.ReplaceAllString(raw, " ")
	out = tagStripPattern.ReplaceAllString(out, " ")
	return collapseSpace(stdhtml.UnescapeString(out))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
