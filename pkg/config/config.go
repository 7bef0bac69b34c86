// Package config loads tenji settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/tenji/config.toml (falling back to
// ~/.config/tenji/config.toml). A missing file is not an error: [Load] returns
// [Default]. Command-line flags override whatever the file sets.
//
//	format = "text"
//
//	[glyphs]
//	raised = "o"
//	flat = "-"
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//	redis_url = ""
//
//	[server]
//	addr = "127.0.0.1:8080"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	tenjierrors "github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/tenji"
)

const (
	appName  = "tenji"
	fileName = "config.toml"
)

// Output formats accepted in the config file and on the command line.
const (
	FormatText    = "text"
	FormatUnicode = "unicode"
	FormatJSON    = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatUnicode, FormatJSON}

// Config is the on-disk configuration.
type Config struct {
	Format string       `toml:"format"`
	Glyphs GlyphsConfig `toml:"glyphs"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// GlyphsConfig selects the dot symbols.
type GlyphsConfig struct {
	Raised string `toml:"raised"`
	Flat   string `toml:"flat"`
}

// CacheConfig controls result caching.
type CacheConfig struct {
	Enabled  bool     `toml:"enabled"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// ServerConfig controls `tenji serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: FormatText,
		Glyphs: GlyphsConfig{
			Raised: string(tenji.DefaultGlyphs.Raised),
			Flat:   string(tenji.DefaultGlyphs.Flat),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration{24 * time.Hour},
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path on top of Default. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, tenjierrors.Wrap(tenjierrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML from r on top of Default.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, tenjierrors.Wrap(tenjierrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks the format and glyphs.
func (c Config) Validate() error {
	if err := tenjierrors.ValidateFormat(c.Format, Formats...); err != nil {
		return err
	}
	if _, err := c.TenjiGlyphs(); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return tenjierrors.New(tenjierrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// TenjiGlyphs converts the glyph settings to tenji.Glyphs.
func (c Config) TenjiGlyphs() (tenji.Glyphs, error) {
	g, err := tenji.ParseGlyphs(c.Glyphs.Raised, c.Glyphs.Flat)
	if err != nil {
		return tenji.Glyphs{}, tenjierrors.Wrap(tenjierrors.ErrCodeInvalidGlyphs, err, "invalid glyphs")
	}
	return g, nil
}

// String renders the config as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := c.Encode(&b); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return b.String()
}
