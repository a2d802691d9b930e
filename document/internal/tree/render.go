package tree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// rawTextElements render their text children verbatim, mirroring html.Render.
var rawTextElements = map[string]bool{
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"noscript":  true,
	"plaintext": true,
	"script":    true,
	"style":     true,
	"xmp":       true,
}

// RenderOuter serialises id and its subtree. For the document node this is
// the whole document.
func (t *Tree) RenderOuter(id NodeID) (string, error) {
	n := t.HTMLNode(id)
	if n == nil {
		return "", fmt.Errorf("render: node %d out of range", id)
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("render node %d: %w", id, err)
	}
	return sb.String(), nil
}

// RenderInner serialises the children of id without id's own tags.
func (t *Tree) RenderInner(id NodeID) (string, error) {
	n := t.HTMLNode(id)
	if n == nil {
		return "", fmt.Errorf("render: node %d out of range", id)
	}
	raw := n.Type == html.ElementNode && rawTextElements[n.Data]

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if raw && c.Type == html.TextNode {
			sb.WriteString(c.Data)
			continue
		}
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("render children of %d: %w", id, err)
		}
	}
	return sb.String(), nil
}
