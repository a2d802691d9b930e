// Package parse turns markup into a tree.Tree using the x/net/html HTML5
// parser. Parsing is deterministic and never fetches referenced resources.
package parse

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/hazyhaar/scrape/document/internal/tree"
)

// Options controls parser behaviour.
type Options struct {
	// DisableScripting parses <noscript> content as markup instead of raw
	// text, as a browser with scripting turned off would.
	DisableScripting bool
}

// Parse builds a Tree from markup. The html, head and body elements are
// synthesised when absent. An error is only returned when the parser itself
// gives up, which the HTML5 algorithm makes exceptionally rare.
func Parse(markup string, opts Options) (*tree.Tree, error) {
	root, err := html.ParseWithOptions(
		strings.NewReader(markup),
		html.ParseOptionEnableScripting(!opts.DisableScripting),
	)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return tree.Build(root), nil
}
