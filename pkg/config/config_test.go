package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tenjierrors "github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/tenji"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	g, err := cfg.TenjiGlyphs()
	if err != nil {
		t.Fatalf("TenjiGlyphs() error: %v", err)
	}
	if g != tenji.DefaultGlyphs {
		t.Errorf("TenjiGlyphs() = %+v, want %+v", g, tenji.DefaultGlyphs)
	}
	if cfg.Cache.TTL.Duration != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
format = "unicode"

[glyphs]
raised = "●"
flat = "○"

[cache]
enabled = false
ttl = "90m"
redis_url = "redis://localhost:6379/1"

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Format != FormatUnicode {
		t.Errorf("Format = %q, want unicode", cfg.Format)
	}
	if cfg.Glyphs.Raised != "●" || cfg.Glyphs.Flat != "○" {
		t.Errorf("Glyphs = %+v", cfg.Glyphs)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("Cache.TTL = %v, want 90m", cfg.Cache.TTL)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`format = "json"`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Glyphs != Default().Glyphs {
		t.Errorf("Glyphs = %+v, want defaults", cfg.Glyphs)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should keep its default")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code tenjierrors.Code
	}{
		{"syntax", `format = `, tenjierrors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"", tenjierrors.ErrCodeInvalidConfig},
		{"bad format", `format = "svg"`, tenjierrors.ErrCodeInvalidFormat},
		{"same glyphs", "[glyphs]\nraised = \"x\"\nflat = \"x\"", tenjierrors.ErrCodeInvalidGlyphs},
		{"long glyph", "[glyphs]\nraised = \"xx\"", tenjierrors.ErrCodeInvalidGlyphs},
		{"negative ttl", "[cache]\nttl = \"-1h\"", tenjierrors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
			if !tenjierrors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", tenjierrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Format = FormatJSON
	cfg.Cache.TTL = Duration{2 * time.Hour}

	got, err := Decode(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Decode(String()) error: %v\n%s", err, cfg.String())
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "tenji", "config.toml") {
		t.Errorf("Path() = %q", path)
	}
}
