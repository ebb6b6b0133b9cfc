package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

var richTextPolicy = bluemonday.UGCPolicy()

// ForStorage strips disallowed markup from a rich-text comment body before it
// is persisted.
func ForStorage(richText string) string {
	return richTextPolicy.Sanitize(richText)
}

// ForDisplay escapes a plain string for safe embedding in markup.
func ForDisplay(s string) string {
	return html.EscapeString(s)
}

// PlainText flattens a rich-text body to its text content. Embedded images
// are kept as a trailing list of links so they survive plain rendering.
func PlainText(richText string) string {
	root, err := xhtml.Parse(strings.NewReader(richText))
	if err != nil {
		return richText
	}

	var text strings.Builder
	var imageLinks []string

	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			text.WriteString(n.Data)
		}
		if n.Type == xhtml.ElementNode && n.Data == "img" {
			for _, attr := range n.Attr {
				if attr.Key == "src" && attr.Val != "" {
					imageLinks = append(imageLinks, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	out := strings.TrimSpace(text.String())
	if len(imageLinks) > 0 {
		out += " Images Link: " + strings.Join(imageLinks, " ")
	}
	return strings.TrimSpace(out)
}
