// Package config holds the settings a template context snapshots when it is
// created: where templates live, which suffix they carry and which escaping
// strategies apply.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-view/pkg/escape"
)

// DefaultSuffix is the template extension used when none is configured.
const DefaultSuffix = ".tpl"

// Config is copied into every template context at construction. Contexts
// mutate their own copy; the defaults an engine holds are meant to be set
// once at start-up and only read afterwards.
type Config struct {
	// Path is prepended to relative template references.
	Path string
	// Suffix is appended to references that do not already end with it.
	Suffix string
	// Escapers are applied in order by a context's Escape method.
	Escapers []escape.Escaper
}

// Default returns the out of the box settings: the ".tpl" suffix and HTML
// escaping.
func Default() Config {
	return Config{
		Suffix:   DefaultSuffix,
		Escapers: []escape.Escaper{escape.HTML()},
	}
}

// Clone returns a copy that shares nothing mutable with c.
func (c Config) Clone() Config {
	out := c
	if c.Escapers != nil {
		out.Escapers = make([]escape.Escaper, len(c.Escapers))
		copy(out.Escapers, c.Escapers)
	}
	return out
}

// Chain returns the escapers as a single pipeline.
func (c Config) Chain() escape.Chain {
	return escape.Chain(c.Escapers)
}

type fileConfig struct {
	Path   *string  `yaml:"path"`
	Suffix *string  `yaml:"suffix"`
	Escape []string `yaml:"escape"`
}

// Parse reads YAML settings on top of Default. Keys that are absent keep
// their default; an explicit empty "escape" list disables escaping.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}

	if raw.Path != nil {
		cfg.Path = strings.TrimSpace(*raw.Path)
	}
	if raw.Suffix != nil {
		cfg.Suffix = strings.TrimSpace(*raw.Suffix)
	}
	if raw.Escape != nil {
		chain, err := escape.LookupAll(raw.Escape...)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.Escapers = chain
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}
