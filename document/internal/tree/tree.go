// CLAUDE:SUMMARY Arena-backed read-only HTML tree addressed by stable preorder NodeIDs.
// Package tree stores a parsed HTML document as an arena of nodes.
//
// Node ids are allocated in preorder while the parsed tree is flattened, so the
// subtree of a node is exactly the id range [id, End). A Tree is never mutated
// after Build and may be read from any number of goroutines without locking.
package tree

import (
	"iter"

	"golang.org/x/net/html"
)

// NodeID addresses a node inside one Tree. It is meaningless without that Tree.
type NodeID int32

// None marks an absent structural link.
const None NodeID = -1

// Kind is the node type of an arena record.
type Kind uint8

const (
	KindOther Kind = iota
	KindDocument
	KindElement
	KindText
	KindComment
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	default:
		return "other"
	}
}

// Attr is one element attribute. Foreign attributes keep their namespace
// prefix in Key ("xlink:href").
type Attr struct {
	Key string
	Val string
}

// Node is one arena record.
type Node struct {
	Kind  Kind
	Name  string // tag name, elements only
	Data  string // text, comment or doctype payload
	Attrs []Attr // ordered, names unique, elements only

	Parent      NodeID
	FirstChild  NodeID
	LastChild   NodeID
	PrevSibling NodeID
	NextSibling NodeID

	// End is one past the last id of this node's subtree.
	End NodeID
}

// Tree is an immutable arena of nodes. The parsed *html.Node backing each
// record is retained for selector matching and serialization.
type Tree struct {
	nodes   []Node
	src     []*html.Node
	docElem NodeID
}

// Build flattens a parsed document into a Tree. root is normally the
// DocumentNode returned by html.Parse.
func Build(root *html.Node) *Tree {
	t := &Tree{docElem: None}
	if root == nil {
		return t
	}
	t.add(root, None)
	for c := t.nodes[0].FirstChild; c != None; c = t.nodes[c].NextSibling {
		if t.nodes[c].Kind == KindElement {
			t.docElem = c
			break
		}
	}
	if t.docElem == None && t.nodes[0].Kind == KindElement {
		t.docElem = 0
	}
	return t
}

func (t *Tree) add(n *html.Node, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	rec := Node{
		Kind:        kindOf(n.Type),
		Parent:      parent,
		FirstChild:  None,
		LastChild:   None,
		PrevSibling: None,
		NextSibling: None,
	}
	switch rec.Kind {
	case KindElement:
		rec.Name = n.Data
		rec.Attrs = uniqueAttrs(n.Attr)
	case KindText, KindComment, KindDoctype:
		rec.Data = n.Data
	}
	t.nodes = append(t.nodes, rec)
	t.src = append(t.src, n)

	prev := None
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cid := t.add(c, id)
		if prev == None {
			t.nodes[id].FirstChild = cid
		} else {
			t.nodes[prev].NextSibling = cid
			t.nodes[cid].PrevSibling = prev
		}
		prev = cid
	}
	t.nodes[id].LastChild = prev
	t.nodes[id].End = NodeID(len(t.nodes))
	return id
}

func kindOf(typ html.NodeType) Kind {
	switch typ {
	case html.DocumentNode:
		return KindDocument
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	case html.DoctypeNode:
		return KindDoctype
	default:
		return KindOther
	}
}

// uniqueAttrs keeps the first occurrence of each attribute name.
func uniqueAttrs(in []html.Attribute) []Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Attr{Key: key, Val: a.Val})
	}
	return out
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the id of the document node, or None for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return None
	}
	return 0
}

// DocumentElement returns the first element child of the document node
// (<html> for parsed documents), or None.
func (t *Tree) DocumentElement() NodeID { return t.docElem }

// Valid reports whether id addresses a node of t.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns a copy of the record for id. The Attrs slice is shared with
// the arena and must not be modified.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.Valid(id) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Kind returns the kind of id, or KindOther when id is out of range.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindOther
	}
	return t.nodes[id].Kind
}

// HTMLNode returns the parsed node backing id. Callers must treat it as
// read-only.
func (t *Tree) HTMLNode(id NodeID) *html.Node {
	if !t.Valid(id) {
		return nil
	}
	return t.src[id]
}

// Subtree yields id and every descendant in preorder.
func (t *Tree) Subtree(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if !t.Valid(id) {
			return
		}
		for i := id; i < t.nodes[id].End; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Texts yields the payload of every text node in the subtree of id, in
// document order.
func (t *Tree) Texts(id NodeID) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range t.Subtree(id) {
			if t.nodes[i].Kind != KindText {
				continue
			}
			if !yield(t.nodes[i].Data) {
				return
			}
		}
	}
}

// Children yields the direct children of id.
func (t *Tree) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if !t.Valid(id) {
			return
		}
		for c := t.nodes[id].FirstChild; c != None; c = t.nodes[c].NextSibling {
			if !yield(c) {
				return
			}
		}
	}
}
