package selector

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type compiled struct {
	m   *Matcher
	err error
}

// Cache memoises Compile by selector text. Syntax errors are cached too, so a
// caller retrying the same broken selector does not pay for parsing again.
// A nil or disabled Cache compiles on every call. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, compiled]
}

// NewCache returns a cache holding up to size selectors. size <= 0 disables
// memoisation.
func NewCache(size int) *Cache {
	if size <= 0 {
		return &Cache{}
	}
	entries, err := lru.New[string, compiled](size)
	if err != nil {
		return &Cache{}
	}
	return &Cache{entries: entries}
}

// Compile returns the cached result for source, compiling on a miss.
func (c *Cache) Compile(source string) (*Matcher, error) {
	if c == nil || c.entries == nil {
		return Compile(source)
	}
	if hit, ok := c.entries.Get(source); ok {
		return hit.m, hit.err
	}
	m, err := Compile(source)
	c.entries.Add(source, compiled{m: m, err: err})
	return m, err
}

// Len returns the number of cached selectors.
func (c *Cache) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}
