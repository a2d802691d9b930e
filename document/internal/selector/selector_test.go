package selector

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/hazyhaar/scrape/document/internal/tree"
)

const sample = `
<html>
    <body>
        <div class="container">
            <h1 foo="bar">Hello world!</h1>
            <h1>Something</h1>
            <h1 bar="foo">Another</h1>
        </div>
    </body>
</html>
`

func mustTree(t *testing.T, markup string) *tree.Tree {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree.Build(root)
}

func names(t *tree.Tree, ids []tree.NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		n, _ := t.Node(id)
		out[i] = n.Name
	}
	return out
}

func TestCompile_SyntaxError(t *testing.T) {
	for _, sel := range []string{"[[[invalid", "", "div >", "a[", ":nope("} {
		_, err := Compile(sel)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Compile(%q): got %v, want *SyntaxError", sel, err)
			continue
		}
		if se.Selector != sel {
			t.Errorf("SyntaxError.Selector: got %q, want %q", se.Selector, sel)
		}
	}
}

func TestEvaluate_IncludesRoot(t *testing.T) {
	tr := mustTree(t, sample)
	m, err := Compile("*")
	if err != nil {
		t.Fatal(err)
	}
	got := Evaluate(m, tr, tr.DocumentElement())
	want := []string{"html", "head", "body", "div", "h1", "h1", "h1"}
	if strings.Join(names(tr, got), ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", names(tr, got), want)
	}
}

func TestEvaluate_Combinators(t *testing.T) {
	tr := mustTree(t, sample)
	tests := []struct {
		sel  string
		want int
	}{
		{"div.container>h1[foo]", 1},
		{"div#nonExistingId", 0},
		{"h1", 3},
		{"h1 + h1", 2},
		{"h1 ~ h1[bar]", 1},
		{"body h1", 3},
		{"html > h1", 0},
		{"h1[foo], h1[bar]", 2},
	}
	for _, tt := range tests {
		m, err := Compile(tt.sel)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.sel, err)
		}
		if got := len(Evaluate(m, tr, tr.Root())); got != tt.want {
			t.Errorf("%q: got %d matches, want %d", tt.sel, got, tt.want)
		}
	}
}

func TestEvaluate_Scoped(t *testing.T) {
	tr := mustTree(t, `<div id="a"><p>1</p></div><div id="b"><p>2</p><p>3</p></div>`)
	all, _ := Compile("*")
	p, _ := Compile("p")
	divB, _ := Compile("#b")

	roots := Evaluate(divB, tr, tr.Root())
	if len(roots) != 1 {
		t.Fatalf("#b: got %d", len(roots))
	}
	b := roots[0]
	bNode, _ := tr.Node(b)

	for _, id := range Evaluate(all, tr, b) {
		if id < b || id >= bNode.End {
			t.Errorf("match %d escapes subtree [%d,%d)", id, b, bNode.End)
		}
	}
	if got := len(Evaluate(p, tr, b)); got != 2 {
		t.Errorf("p under #b: got %d, want 2", got)
	}
}

func TestMatch_NonElement(t *testing.T) {
	tr := mustTree(t, `<p>text</p>`)
	m, _ := Compile("*")
	if m.Match(tr, tr.Root()) {
		t.Error("document node must not match")
	}
	for id := range tr.Subtree(tr.Root()) {
		if tr.Kind(id) == tree.KindText && m.Match(tr, id) {
			t.Error("text node must not match")
		}
	}
}

func TestMatcher_ReusableAcrossTrees(t *testing.T) {
	m, _ := Compile("li")
	a := mustTree(t, `<ul><li>1</li></ul>`)
	b := mustTree(t, `<ol><li>1</li><li>2</li></ol>`)
	if n := len(Evaluate(m, a, a.Root())); n != 1 {
		t.Errorf("tree a: got %d", n)
	}
	if n := len(Evaluate(m, b, b.Root())); n != 2 {
		t.Errorf("tree b: got %d", n)
	}
	if m.String() != "li" {
		t.Errorf("String: got %q", m.String())
	}
}

func TestCache(t *testing.T) {
	c := NewCache(2)
	m1, err := c.Compile("p")
	if err != nil {
		t.Fatal(err)
	}
	m2, _ := c.Compile("p")
	if m1 != m2 {
		t.Error("expected the cached matcher to be reused")
	}
	_, err1 := c.Compile("[[[")
	_, err2 := c.Compile("[[[")
	if err1 == nil || err1 != err2 {
		t.Errorf("syntax errors should be cached: %v / %v", err1, err2)
	}
	c.Compile("div")
	if c.Len() != 2 {
		t.Errorf("Len: got %d, want 2", c.Len())
	}
}

func TestCache_Disabled(t *testing.T) {
	c := NewCache(-1)
	m1, _ := c.Compile("p")
	m2, _ := c.Compile("p")
	if m1 == m2 {
		t.Error("disabled cache should compile each time")
	}
	if c.Len() != 0 {
		t.Errorf("Len: got %d", c.Len())
	}

	var nilCache *Cache
	if _, err := nilCache.Compile("p"); err != nil {
		t.Errorf("nil cache: %v", err)
	}
}
