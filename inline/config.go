package inline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls which references the inliner rewrites.
type Config struct {
	// Attributes lists the attribute names scanned for resource links.
	Attributes []string `yaml:"attributes"`
	// TextExtensions lists the file extensions whose content is embedded
	// directly as text. Everything else becomes a base64 data URI.
	TextExtensions []string `yaml:"text_extensions"`
}

// DefaultConfig returns the built-in behavior: follow href and src, and
// embed html, js and css as text.
func DefaultConfig() *Config {
	return &Config{
		Attributes:     []string{"href", "src"},
		TextExtensions: []string{".html", ".js", ".css"},
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
