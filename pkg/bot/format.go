package bot

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// MessageLimit is the outbound message size ceiling; longer replies are split.
const MessageLimit = 4000

var newlineRunPattern = regexp.MustCompile(`\n{3,}`)

// FormatSummary wraps a summary body with its source attribution: the page
// title pinned on top and the original URL below. Plain-text input carries no
// source line.
func FormatSummary(title, sourceURL, body string) string {
	if sourceURL == "" {
		return fmt.Sprintf("📌 %s\n\n%s\n", title, body)
	}
	return fmt.Sprintf("📌 %s\n\n%s\n\n▶ %s", title, body, sourceURL)
}

// RenderHTML converts model-produced markdown into the HTML subset Telegram
// accepts: headings and strong runs become bold, emphasis becomes italic,
// list items become bullet lines, code spans and blocks are preserved.
// Everything else is flattened to escaped text.
func RenderHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	var out strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Heading:
			if entering {
				out.WriteString("<b>")
			} else {
				out.WriteString("</b>\n\n")
			}
		case *ast.Strong:
			if entering {
				out.WriteString("<b>")
			} else {
				out.WriteString("</b>")
			}
		case *ast.Emph:
			if entering {
				out.WriteString("<i>")
			} else {
				out.WriteString("</i>")
			}
		case *ast.ListItem:
			if entering {
				out.WriteString("• ")
			} else {
				out.WriteString("\n")
			}
		case *ast.Paragraph:
			if !entering {
				if _, inList := node.GetParent().(*ast.ListItem); !inList {
					out.WriteString("\n\n")
				}
			}
		case *ast.Code:
			out.WriteString("<code>")
			out.WriteString(html.EscapeString(string(n.Literal)))
			out.WriteString("</code>")
		case *ast.CodeBlock:
			if entering {
				out.WriteString("<pre>")
				out.WriteString(html.EscapeString(strings.TrimRight(string(n.Literal), "\n")))
				out.WriteString("</pre>\n\n")
			}
		case *ast.Text:
			out.WriteString(html.EscapeString(string(n.Literal)))
		case *ast.Softbreak, *ast.Hardbreak:
			if entering {
				out.WriteString("\n")
			}
		}
		return ast.GoToNext
	})

	rendered := newlineRunPattern.ReplaceAllString(out.String(), "\n\n")
	return strings.TrimSpace(rendered)
}

// SplitMessage splits text into pieces that each fit the outbound message
// limit, preferring line boundaries and never splitting inside a rune.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
