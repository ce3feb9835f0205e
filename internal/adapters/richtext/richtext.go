// Package richtext converts card content, which is HTML produced by the editor or
// Markdown typed by hand, into HTML for printing and plain text for the grid.
package richtext

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImagePlaceholder stands in for an embedded image in plain text
const ImagePlaceholder = "[imagen]"

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				// card content is the user's own HTML
				gmhtml.WithUnsafe(),
				gmhtml.WithHardWraps(),
			),
		)
	})
	return markdownInstance
}

// ToHTML renders card content for the print view
func ToHTML(content string) (template.HTML, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render card content: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PlainText strips markup, collapsing whitespace. Images become ImagePlaceholder.
func PlainText(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch a := atom.Lookup(name); {
			case a == atom.Img && tt != html.EndTagToken:
				b.WriteString(" " + ImagePlaceholder + " ")
			case blockBoundary[a]:
				b.WriteByte(' ')
			}
		}
	}
}

var blockBoundary = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.Tr: true, atom.Td: true,
}

// Preview returns at most n runes of plain text, marking truncation with an ellipsis
func Preview(content string, n int) string {
	text := PlainText(content)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

// HasImage reports whether content embeds an image
func HasImage(content string) bool {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Img {
				return true
			}
		}
	}
}
