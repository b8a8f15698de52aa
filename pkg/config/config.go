package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/assetwatch/pkg/errors"
)

// Config is the complete pipeline configuration
type Config struct {
	Sources      []string `koanf:"sources" toml:"sources" yaml:"sources"`
	Destinations []string `koanf:"destinations" toml:"destinations" yaml:"destinations"`

	Header     string `koanf:"header" toml:"header" yaml:"header"`
	HeaderFile string `koanf:"header_file" toml:"header_file,omitempty" yaml:"header_file,omitempty"`

	Minify     Minify     `koanf:"minify" toml:"minify" yaml:"minify"`
	Stylesheet Stylesheet `koanf:"stylesheet" toml:"stylesheet" yaml:"stylesheet"`
	Watch      Watch      `koanf:"watch" toml:"watch" yaml:"watch"`
	Log        Log        `koanf:"log" toml:"log" yaml:"log"`
}

// Minify toggles compact output per kind
type Minify struct {
	Script         bool `koanf:"script" toml:"script" yaml:"script"`
	Stylesheet     bool `koanf:"stylesheet" toml:"stylesheet" yaml:"stylesheet"`
	StructuredData bool `koanf:"structured_data" toml:"structured_data" yaml:"structured_data"`
	Markup         bool `koanf:"markup" toml:"markup" yaml:"markup"`
}

// Stylesheet configures the stylesheet compiler
type Stylesheet struct {
	IncludePaths []string      `koanf:"include_paths" toml:"include_paths" yaml:"include_paths"`
	Compiler     string        `koanf:"compiler" toml:"compiler" yaml:"compiler"`
	Timeout      time.Duration `koanf:"timeout" toml:"timeout" yaml:"timeout"`
}

// Watch configures watch mode
type Watch struct {
	Enabled bool `koanf:"enabled" toml:"enabled" yaml:"enabled"`
}

// Log configures logging
type Log struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity" yaml:"verbosity"`
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one source root is required")
	}
	if len(c.Destinations) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one destination root is required")
	}
	if len(c.Destinations) != 1 && len(c.Destinations) != len(c.Sources) {
		return errors.Newf(errors.ErrConfigValid,
			"destinations must be a single root or one per source (%d sources, %d destinations)",
			len(c.Sources), len(c.Destinations)).
			WithDetail("sources", c.Sources).
			WithDetail("destinations", c.Destinations)
	}
	for _, dest := range c.Destinations {
		for _, src := range c.Sources {
			if overlaps(src, dest) {
				return errors.Newf(errors.ErrConfigValid,
					"destination %s overlaps source %s", dest, src).
					WithPath(dest)
			}
		}
	}
	if c.Stylesheet.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "stylesheet.timeout cannot be negative")
	}
	return nil
}

// overlaps reports whether either path contains the other
func overlaps(a, b string) bool {
	return contains(a, b) || contains(b, a)
}

func contains(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
