// CLAUDE:SUMMARY Compiles CSS selectors with cascadia and evaluates them over tree subtrees in preorder.
// Package selector adapts the cascadia CSS selector engine to tree.Tree.
//
// A Matcher is compiled once and may be evaluated against any tree, from any
// goroutine. Compilation failures are reported as *SyntaxError so callers can
// branch on them explicitly.
package selector

import (
	"fmt"

	"github.com/andybalholm/cascadia"

	"github.com/hazyhaar/scrape/document/internal/tree"
)

// SyntaxError is returned by Compile when a selector does not parse.
type SyntaxError struct {
	Selector string
	Err      error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("selector %q: %v", e.Selector, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Matcher is a compiled selector group ("a, b > c").
type Matcher struct {
	source string
	group  cascadia.SelectorGroup
}

// Compile parses source into a Matcher.
func Compile(source string) (*Matcher, error) {
	group, err := cascadia.ParseGroup(source)
	if err != nil {
		return nil, &SyntaxError{Selector: source, Err: err}
	}
	return &Matcher{source: source, group: group}, nil
}

// String returns the selector text the matcher was compiled from.
func (m *Matcher) String() string { return m.source }

// Match reports whether the element id matches. Non-element nodes never match.
func (m *Matcher) Match(t *tree.Tree, id tree.NodeID) bool {
	if t.Kind(id) != tree.KindElement {
		return false
	}
	return m.group.Match(t.HTMLNode(id))
}

// Evaluate returns every element in the subtree rooted at root that matches
// m, in document order. root itself is included when it matches.
// Combinators may look at ancestors outside the subtree, as in
// querySelectorAll; results never leave it.
func Evaluate(m *Matcher, t *tree.Tree, root tree.NodeID) []tree.NodeID {
	var out []tree.NodeID
	for id := range t.Subtree(root) {
		if m.Match(t, id) {
			out = append(out, id)
		}
	}
	return out
}
