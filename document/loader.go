package document

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hazyhaar/scrape/document/internal/parse"
	"github.com/hazyhaar/scrape/document/internal/selector"
	"github.com/hazyhaar/scrape/document/internal/tree"
)

// Matcher is a compiled CSS selector, reusable across documents.
type Matcher = selector.Matcher

// Loader parses documents and holds what their handles share: the compiled
// selector cache, the markdown converter and the sanitising policy.
// A Loader is safe for concurrent use.
type Loader struct {
	cfg       Config
	logger    *slog.Logger
	matchers  *selector.Cache
	markdown  *converter.Converter
	sanitizer *bluemonday.Policy
}

// NewLoader creates a Loader. Zero fields of cfg take their defaults.
func NewLoader(cfg Config) *Loader {
	cfg.defaults()
	return &Loader{
		cfg:      cfg,
		logger:   cfg.Logger,
		matchers: selector.NewCache(cfg.MatcherCacheSize),
		markdown: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Load parses markup into a new Document.
//
// HTML parsing recovers from any malformed input, so the *ParseError path is
// limited to oversized input and parser failures.
func (l *Loader) Load(markup string) (*Document, error) {
	if int64(len(markup)) > l.cfg.MaxMarkupBytes {
		return nil, &ParseError{Err: fmt.Errorf("%w: %d > %d bytes", ErrMarkupTooLarge, len(markup), l.cfg.MaxMarkupBytes)}
	}

	start := time.Now()
	t, err := parse.Parse(markup, parse.Options{DisableScripting: l.cfg.DisableScripting})
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	d := &Document{loader: l, root: t.DocumentElement()}
	if d.root == tree.None {
		d.root = t.Root()
	}
	d.tree.Store(t)

	l.logger.Debug("document: loaded",
		"bytes", len(markup),
		"nodes", t.Len(),
		"duration", time.Since(start),
	)
	return d, nil
}

// Compile compiles a selector through the loader's cache. Unlike Query, it
// reports malformed selectors as a *SyntaxError.
func (l *Loader) Compile(sel string) (*Matcher, error) {
	return l.matchers.Compile(sel)
}

var defaultLoader = sync.OnceValue(func() *Loader {
	return NewLoader(Config{})
})

// Load parses markup with the default Loader.
func Load(markup string) (*Document, error) {
	return defaultLoader().Load(markup)
}

// Compile compiles a selector with the default Loader's cache.
func Compile(sel string) (*Matcher, error) {
	return defaultLoader().Compile(sel)
}
