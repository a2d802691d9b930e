package bridge

import (
	"errors"
	"strings"
	"testing"

	"github.com/hazyhaar/scrape/document"
)

const sample = `<div class="container"><h1 foo="bar">Hello world!</h1><h1>Something</h1><h1 bar="foo">Another</h1></div>`

func newRegistry(t *testing.T, cfg Config) *Registry {
	t.Helper()
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRegistry_LoadRootQuery(t *testing.T) {
	r := newRegistry(t, Config{})

	docID, err := r.Load(sample)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(docID, "doc_") {
		t.Errorf("document id: got %q", docID)
	}
	rootID, err := r.Root(docID)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := r.Query(rootID, "div.container>h1[foo]")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || !strings.HasPrefix(ids[0], "el_") {
		t.Fatalf("query ids: got %v", ids)
	}

	el, err := r.Element(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := el.Attr("foo"); !ok || v != "bar" {
		t.Errorf("foo: got %q %v", v, ok)
	}

	if bad, err := r.Query(rootID, "[[[invalid"); err != nil || len(bad) != 0 {
		t.Errorf("malformed selector: got %v %v", bad, err)
	}
	if s := r.Stats(); s.Documents != 1 || s.Handles != 2 {
		t.Errorf("stats: got %+v", s)
	}
}

func TestRegistry_FreeDocumentLeavesDanglingHandles(t *testing.T) {
	r := newRegistry(t, Config{})
	docID, _ := r.Load(sample)
	rootID, _ := r.Root(docID)
	ids, _ := r.Query(rootID, "h1")

	if err := r.Free(docID); err != nil {
		t.Fatal(err)
	}
	el, err := r.Element(ids[0])
	if err != nil {
		t.Fatalf("element id should stay registered: %v", err)
	}
	if _, err := el.Name(); !errors.Is(err, document.ErrDanglingHandle) {
		t.Errorf("Name after free: got %v", err)
	}
	if _, err := r.Query(rootID, "*"); !errors.Is(err, document.ErrDanglingHandle) {
		t.Errorf("Query after free: got %v", err)
	}
	if _, err := r.Root(docID); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Root after free: got %v", err)
	}
	if err := r.Free(docID); !errors.Is(err, ErrUnknownID) {
		t.Errorf("double free: got %v", err)
	}

	for _, id := range append(ids, rootID) {
		if err := r.Free(id); err != nil {
			t.Errorf("free %s: %v", id, err)
		}
	}
	if s := r.Stats(); s.Documents != 0 || s.Handles != 0 {
		t.Errorf("stats after free: %+v", s)
	}
}

func TestRegistry_UnknownIDs(t *testing.T) {
	r := newRegistry(t, Config{})
	for _, id := range []string{"", "doc_missing", "el_missing", "other"} {
		if err := r.Free(id); !errors.Is(err, ErrUnknownID) {
			t.Errorf("Free(%q): got %v", id, err)
		}
	}
	if _, err := r.Element("el_missing"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Element: got %v", err)
	}
	if _, err := r.Query("el_missing", "*"); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Query: got %v", err)
	}
}

func TestRegistry_Quotas(t *testing.T) {
	r := newRegistry(t, Config{MaxDocuments: 1, MaxHandles: 3})

	docID, err := r.Load(sample)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Load(sample); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("second document: got %v", err)
	}

	rootID, _ := r.Root(docID)
	if _, err := r.Query(rootID, "h1"); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("3 matches on top of root: got %v", err)
	}
	if ids, err := r.Query(rootID, "div"); err != nil || len(ids) != 1 {
		t.Errorf("1 match: got %v %v", ids, err)
	}

	r.Free(docID)
	if _, err := r.Load(sample); err != nil {
		t.Errorf("load after free: %v", err)
	}
}

func TestRegistry_NanoIDStrategy(t *testing.T) {
	r := newRegistry(t, Config{IDStrategy: "nanoid"})
	docID, err := r.Load(sample)
	if err != nil {
		t.Fatal(err)
	}
	if len(docID) != len("doc_")+16 {
		t.Errorf("nanoid document id: got %q", docID)
	}

	if _, err := New(Config{IDStrategy: "bogus"}); err == nil {
		t.Error("unknown strategy should fail")
	}
}

func TestRegistry_ParseError(t *testing.T) {
	r := newRegistry(t, Config{Document: document.Config{MaxMarkupBytes: 8}})
	_, err := r.Load(sample)
	var pe *document.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("got %v, want *document.ParseError", err)
	}
	if s := r.Stats(); s.Documents != 0 {
		t.Errorf("failed load must not register: %+v", s)
	}
}
