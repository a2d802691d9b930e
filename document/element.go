package document

import (
	"errors"
	"fmt"

	"github.com/hazyhaar/scrape/collection"
	"github.com/hazyhaar/scrape/document/internal/selector"
	"github.com/hazyhaar/scrape/document/internal/tree"
)

// Element is a non-owning handle to one element of a Document. Elements are
// comparable and cheap to copy; copies share the Document's tree. The zero
// Element is dangling.
type Element struct {
	doc *Document
	id  NodeID
}

// ID returns the node id of the element within its Document.
func (e Element) ID() NodeID { return e.id }

// Document returns the owning Document.
func (e Element) Document() *Document { return e.doc }

// resolve loads the live tree and the record for e, requiring an element.
func (e Element) resolve() (*tree.Tree, tree.Node, error) {
	t, err := e.doc.acquire()
	if err != nil {
		return nil, tree.Node{}, err
	}
	n, ok := t.Node(e.id)
	if !ok {
		return nil, tree.Node{}, fmt.Errorf("%w: %d", ErrInvalidNode, e.id)
	}
	if n.Kind != tree.KindElement {
		return nil, tree.Node{}, fmt.Errorf("%w: node %d is a %s node", ErrNotAnElement, e.id, n.Kind)
	}
	return t, n, nil
}

// Name returns the lower-case tag name.
func (e Element) Name() (string, error) {
	_, n, err := e.resolve()
	if err != nil {
		return "", err
	}
	return n.Name, nil
}

// Attributes returns a snapshot of the element's attributes in source order.
func (e Element) Attributes() (Attributes, error) {
	_, n, err := e.resolve()
	if err != nil {
		return Attributes{}, err
	}
	return newAttributes(n.Attrs), nil
}

// Attr returns a single attribute value.
func (e Element) Attr(name string) (string, bool, error) {
	_, n, err := e.resolve()
	if err != nil {
		return "", false, err
	}
	for _, a := range n.Attrs {
		if a.Key == name {
			return a.Val, true, nil
		}
	}
	return "", false, nil
}

// HTML returns the markup of the element and its subtree.
func (e Element) HTML() (string, error) {
	t, _, err := e.resolve()
	if err != nil {
		return "", err
	}
	return t.RenderOuter(e.id)
}

// InnerHTML returns the markup of the element's children.
func (e Element) InnerHTML() (string, error) {
	t, _, err := e.resolve()
	if err != nil {
		return "", err
	}
	return t.RenderInner(e.id)
}

// Text returns the content of every descendant text node, in document order
// and untrimmed. Each call walks the subtree again.
func (e Element) Text() (*collection.Deque[string], error) {
	t, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	out := collection.New[string](0)
	for s := range t.Texts(e.id) {
		out.PushBack(s)
	}
	return out, nil
}

// Query returns the descendants of e matching sel, in document order.
//
// A selector that does not compile yields an empty collection and a nil
// error: callers building selectors dynamically get "no match" rather than a
// failure. Use Compile and QueryMatcher to observe syntax errors. The error
// return is reserved for dangling or invalid handles.
func (e Element) Query(sel string) (*collection.Deque[Element], error) {
	t, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	m, err := e.doc.loader.Compile(sel)
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		e.doc.loader.logger.Debug("document: invalid selector, empty result",
			"selector", sel, "error", syntaxErr.Err)
		return collection.New[Element](0), nil
	}
	if err != nil {
		return nil, err
	}
	return e.collect(t, m), nil
}

// QueryMatcher is Query with a precompiled matcher.
func (e Element) QueryMatcher(m *Matcher) (*collection.Deque[Element], error) {
	t, _, err := e.resolve()
	if err != nil {
		return nil, err
	}
	return e.collect(t, m), nil
}

// collect evaluates m over e's subtree. The scope element is skipped so that
// results are strict descendants, as with querySelectorAll.
func (e Element) collect(t *tree.Tree, m *Matcher) *collection.Deque[Element] {
	ids := selector.Evaluate(m, t, e.id)
	out := collection.New[Element](len(ids))
	for _, id := range ids {
		if id == e.id {
			continue
		}
		out.PushBack(Element{doc: e.doc, id: id})
	}
	return out
}

// Matches reports whether e itself matches sel. Malformed selectors never
// match.
func (e Element) Matches(sel string) (bool, error) {
	t, _, err := e.resolve()
	if err != nil {
		return false, err
	}
	m, err := e.doc.loader.Compile(sel)
	if err != nil {
		return false, nil
	}
	return m.Match(t, e.id), nil
}

// Markdown converts the element's subtree to CommonMark.
func (e Element) Markdown() (string, error) {
	outer, err := e.HTML()
	if err != nil {
		return "", err
	}
	md, err := e.doc.loader.markdown.ConvertString(outer)
	if err != nil {
		return "", fmt.Errorf("document: markdown: %w", err)
	}
	return md, nil
}

// SanitizedHTML returns the element's markup with scripts, event handlers and
// other unsafe constructs removed (bluemonday UGC policy).
func (e Element) SanitizedHTML() (string, error) {
	outer, err := e.HTML()
	if err != nil {
		return "", err
	}
	return e.doc.loader.sanitizer.Sanitize(outer), nil
}
