package alquran

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText flattens edition text into a single line of plain text.
// Some translation editions carry inline markup. Tags are dropped, footnote
// markers are removed along with their content and whitespace is collapsed.
func PlainText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	text, err := flattenHTML(s)
	if err != nil {
		return collapse(s)
	}
	return collapse(text)
}

func flattenHTML(s string) (string, error) {
	// Parse the HTML fragment
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	var b strings.Builder
	for _, node := range nodes {
		writeText(&b, node)
	}
	return b.String(), nil
}

// writeText appends the visible text under n, separating blocks with spaces.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if isFootnote(n) {
			return
		}
		if isBlock(n) {
			b.WriteByte(' ')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}

	if n.Type == html.ElementNode && isBlock(n) {
		b.WriteByte(' ')
	}
}

func isFootnote(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Sup, atom.Script, atom.Style:
		return true
	}
	for _, a := range n.Attr {
		if a.Key == "foot_note" {
			return true
		}
	}
	return hasClass(n, "footnote")
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func isBlock(n *html.Node) bool {
	switch n.Data {
	case "p", "div", "blockquote", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "br":
		return true
	}
	return false
}

// collapse removes newlines and runs of whitespace.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
