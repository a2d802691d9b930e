package document

import (
	"errors"

	"github.com/hazyhaar/scrape/document/internal/selector"
)

// ErrDanglingHandle is returned by every Element accessor once the owning
// Document has been closed, and for the zero Element.
var ErrDanglingHandle = errors.New("document: handle used after its document was closed")

// ErrNotAnElement is returned when an element accessor reaches a node that is
// not an element.
var ErrNotAnElement = errors.New("document: node is not an element")

// ErrInvalidNode is returned when a node id does not belong to the document.
var ErrInvalidNode = errors.New("document: node id out of range")

// ErrMarkupTooLarge is wrapped in a *ParseError when input exceeds
// Config.MaxMarkupBytes.
var ErrMarkupTooLarge = errors.New("document: markup exceeds size limit")

// ParseError reports that markup could not be turned into a tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "document: parse: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// SyntaxError is the compile error for malformed selectors. Query swallows it;
// Compile returns it.
type SyntaxError = selector.SyntaxError
