// CLAUDE:SUMMARY Configuration structs, defaults and YAML loader for the bridge registry.
package bridge

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/scrape/document"
)

// Config configures a Registry.
type Config struct {
	Document document.Config `yaml:"document"`

	// MaxDocuments caps live documents (default: 1024).
	MaxDocuments int `yaml:"max_documents"`

	// MaxHandles caps issued element ids, freed or not (default: 1,000,000).
	MaxHandles int `yaml:"max_handles"`

	// IDStrategy selects the id generator: "uuidv7" (default) or "nanoid".
	IDStrategy string `yaml:"id_strategy"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxDocuments <= 0 {
		c.MaxDocuments = 1024
	}
	if c.MaxHandles <= 0 {
		c.MaxHandles = 1_000_000
	}
	if c.IDStrategy == "" {
		c.IDStrategy = "uuidv7"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Document.Logger == nil {
		c.Document.Logger = c.Logger
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
