// Package bridge exposes documents and element handles to a host runtime
// that refers to them by opaque string ids and may hold them indefinitely,
// calling back in any order.
//
// Freeing a document closes it but leaves its element ids registered: later
// calls through them report document.ErrDanglingHandle, exactly as a host
// holding a stale handle object would observe. Element ids are released with
// Free like any other id.
package bridge

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hazyhaar/scrape/document"
	"github.com/hazyhaar/scrape/idgen"
)

const (
	docPrefix  = "doc_"
	elemPrefix = "el_"
)

// Stats is a snapshot of registry occupancy.
type Stats struct {
	Documents int `json:"documents"`
	Handles   int `json:"handles"`
}

// Registry maps opaque ids to documents and element handles. Safe for
// concurrent use; every call runs to completion before returning.
type Registry struct {
	cfg     Config
	logger  *slog.Logger
	loader  *document.Loader
	newDoc  idgen.Generator
	newElem idgen.Generator

	mu    sync.Mutex
	docs  map[string]*document.Document
	elems map[string]document.Element
}

// New creates a Registry.
func New(cfg Config) (*Registry, error) {
	cfg.defaults()
	gen, err := idgen.ByName(cfg.IDStrategy)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	return &Registry{
		cfg:     cfg,
		logger:  cfg.Logger,
		loader:  document.NewLoader(cfg.Document),
		newDoc:  idgen.Prefixed(docPrefix, gen),
		newElem: idgen.Prefixed(elemPrefix, gen),
		docs:    make(map[string]*document.Document),
		elems:   make(map[string]document.Element),
	}, nil
}

// Load parses markup and returns the new document id.
func (r *Registry) Load(markup string) (string, error) {
	r.mu.Lock()
	full := len(r.docs) >= r.cfg.MaxDocuments
	r.mu.Unlock()
	if full {
		return "", fmt.Errorf("%w: %d documents", ErrQuotaExceeded, r.cfg.MaxDocuments)
	}

	doc, err := r.loader.Load(markup)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.docs) >= r.cfg.MaxDocuments {
		doc.Close()
		return "", fmt.Errorf("%w: %d documents", ErrQuotaExceeded, r.cfg.MaxDocuments)
	}
	id := r.newDoc()
	r.docs[id] = doc
	return id, nil
}

// Root issues a handle id for the root element of a document.
func (r *Registry) Root(docID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[docID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownID, docID)
	}
	ids, err := r.issueLocked([]document.Element{doc.Root()})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// Element returns the handle registered under id.
func (r *Registry) Element(id string) (document.Element, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, ok := r.elems[id]
	if !ok {
		return document.Element{}, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return el, nil
}

// Query runs sel on the element registered under elemID and issues ids for
// the matches, in document order.
func (r *Registry) Query(elemID, sel string) ([]string, error) {
	el, err := r.Element(elemID)
	if err != nil {
		return nil, err
	}
	res, err := el.Query(sel)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issueLocked(res.Slice())
}

func (r *Registry) issueLocked(els []document.Element) ([]string, error) {
	if len(r.elems)+len(els) > r.cfg.MaxHandles {
		r.logger.Warn("bridge: handle quota reached", "handles", len(r.elems), "requested", len(els))
		return nil, fmt.Errorf("%w: %d handles", ErrQuotaExceeded, r.cfg.MaxHandles)
	}
	ids := make([]string, len(els))
	for i, el := range els {
		id := r.newElem()
		r.elems[id] = el
		ids[i] = id
	}
	return ids, nil
}

// Free releases a document or element id. Freeing a document closes it.
func (r *Registry) Free(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case strings.HasPrefix(id, docPrefix):
		doc, ok := r.docs[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		delete(r.docs, id)
		doc.Close()
		r.logger.Info("bridge: document freed", "document", id)
		return nil
	case strings.HasPrefix(id, elemPrefix):
		if _, ok := r.elems[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		delete(r.elems, id)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
}

// Stats returns current occupancy.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Documents: len(r.docs), Handles: len(r.elems)}
}

// Close closes every document and forgets every id.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, doc := range r.docs {
		doc.Close()
		delete(r.docs, id)
	}
	clear(r.elems)
	return nil
}
