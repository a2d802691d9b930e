// CLAUDE:SUMMARY Document owns one parsed tree; Close invalidates every Element handle derived from it.
// Package document parses HTML and exposes the result through Element
// handles that can be queried with CSS selectors.
//
// A Document exclusively owns its parsed tree. Elements are small comparable
// values (document pointer, node id) that never copy the tree. The tree is
// read-only once parsed, so any number of goroutines may read through handles
// concurrently. Close is the only lifecycle event after Load: it releases the
// tree, and every accessor of every handle derived from the Document then
// fails with ErrDanglingHandle instead of reading released data.
//
//	doc, err := document.Load(`<ul><li>a</li><li>b</li></ul>`)
//	if err != nil { ... }
//	defer doc.Close()
//	items, _ := doc.Root().Query("li")
//	for items.Len() > 0 {
//		li, _ := items.PopFront()
//		text, _ := li.Text()
//		...
//	}
package document

import (
	"fmt"
	"sync/atomic"

	"github.com/hazyhaar/scrape/document/internal/tree"
)

// NodeID identifies a node within one Document.
type NodeID = tree.NodeID

// Document is the owner of a parsed tree.
type Document struct {
	tree   atomic.Pointer[tree.Tree]
	root   NodeID
	loader *Loader
}

// Root returns a handle to the root element (<html>). Creating the handle
// never touches the tree, so Root on a closed Document returns a handle whose
// accessors report ErrDanglingHandle.
func (d *Document) Root() Element {
	return Element{doc: d, id: d.root}
}

// Element re-wraps a node id previously obtained from Element.ID.
func (d *Document) Element(id NodeID) (Element, error) {
	t, err := d.acquire()
	if err != nil {
		return Element{}, err
	}
	if !t.Valid(id) {
		return Element{}, fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	if k := t.Kind(id); k != tree.KindElement {
		return Element{}, fmt.Errorf("%w: node %d is a %s node", ErrNotAnElement, id, k)
	}
	return Element{doc: d, id: id}, nil
}

// Len returns the number of nodes in the tree, or 0 once closed.
func (d *Document) Len() int {
	t := d.tree.Load()
	if t == nil {
		return 0
	}
	return t.Len()
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.tree.Load() == nil
}

// Close releases the tree. Handles derived from d become dangling. Close is
// idempotent and always returns nil.
//
// Reads that loaded the tree before Close complete against it; reads that
// start afterwards fail. Callers embedding documents in a host runtime must
// still avoid closing a Document the host can reach handles for, if they
// want those handles to stay usable.
func (d *Document) Close() error {
	if t := d.tree.Swap(nil); t != nil {
		d.loader.logger.Debug("document: closed", "nodes", t.Len())
	}
	return nil
}

// acquire returns the live tree or ErrDanglingHandle.
func (d *Document) acquire() (*tree.Tree, error) {
	if d == nil {
		return nil, ErrDanglingHandle
	}
	t := d.tree.Load()
	if t == nil {
		return nil, ErrDanglingHandle
	}
	return t, nil
}
