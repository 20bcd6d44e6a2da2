// Package config handles editor configuration loading from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Editor    EditorConfig    `toml:"editor"`
	Highlight HighlightConfig `toml:"highlight"`
	LogFile   string          `toml:"log_file"`
}

// EditorConfig holds text editing and layout settings. Line height is
// not configurable: the terminal host renders one row per line.
type EditorConfig struct {
	TabSize            int  `toml:"tab_size"`
	ScrollMargin       int  `toml:"scroll_margin"`
	TrimTrailingSpace  bool `toml:"trim_trailing_space"`
	InsertFinalNewline bool `toml:"insert_final_newline"`
}

// HighlightConfig holds syntax highlighting settings.
type HighlightConfig struct {
	// Theme is the chroma style name used for token colors.
	Theme   string `toml:"theme"`
	Workers int    `toml:"workers"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:            4,
			ScrollMargin:       5,
			TrimTrailingSpace:  false,
			InsertFinalNewline: true,
		},
		Highlight: HighlightConfig{
			Theme:   "monokai",
			Workers: 2,
		},
	}
}

// DefaultPath returns the conventional config file location under the
// user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vellum", "config.toml")
}

// Load reads configuration from a TOML file. A missing file is not an
// error; defaults are returned for every field the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges, collecting every violation.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.TabSize < 1 || c.Editor.TabSize > 16 {
		errs = append(errs, fmt.Errorf("editor.tab_size %d out of range [1, 16]", c.Editor.TabSize))
	}
	if c.Editor.ScrollMargin < 0 {
		errs = append(errs, fmt.Errorf("editor.scroll_margin %d must not be negative", c.Editor.ScrollMargin))
	}
	if c.Highlight.Workers < 1 {
		errs = append(errs, fmt.Errorf("highlight.workers %d must be at least 1", c.Highlight.Workers))
	}
	return errors.Join(errs...)
}
