// CLAUDE:SUMMARY Configuration struct and defaults for document loading and querying.
package document

import "log/slog"

// Config configures a Loader.
type Config struct {
	// MaxMarkupBytes rejects larger inputs with a *ParseError (default: 64 MiB).
	MaxMarkupBytes int64 `json:"max_markup_bytes" yaml:"max_markup_bytes"`

	// MatcherCacheSize bounds the compiled selector cache (default: 256).
	// A negative value disables caching.
	MatcherCacheSize int `json:"matcher_cache_size" yaml:"matcher_cache_size"`

	// DisableScripting parses <noscript> content as markup.
	DisableScripting bool `json:"disable_scripting" yaml:"disable_scripting"`

	// Logger for debug messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxMarkupBytes <= 0 {
		c.MaxMarkupBytes = 64 * 1024 * 1024
	}
	if c.MatcherCacheSize == 0 {
		c.MatcherCacheSize = 256
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
