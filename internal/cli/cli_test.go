package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tenji/pkg/errors"
	"github.com/matzehuels/tenji/pkg/observability"
	"github.com/matzehuels/tenji/pkg/tenji"
)

// testEnv points the config and cache directories at temp dirs and returns
// the config directory.
func testEnv(t *testing.T) string {
	t.Helper()
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)
	return filepath.Join(cfgHome, appName)
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := New(&errOut, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"convert", "KA", "SI"}, "o- o-\n-- oo\n-o -o\n"},
		{"quoted arg", "", []string{"convert", "KA SI"}, "o- o-\n-- oo\n-o -o\n"},
		{"unicode", "", []string{"convert", "-f", "unicode", "TE", "N", "TI"}, "⠟⠴⠗\n"},
		{"glyphs", "", []string{"convert", "--raised", "#", "--flat", ".", "A"}, "#.\n..\n..\n"},
		{"stdin", "KA\nSI\n", []string{"convert"}, "o- o-\n-- oo\n-o -o\n"},
		{"no cache", "", []string{"convert", "--no-cache", "A"}, "o-\n--\n--\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)
			got, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertJSON(t *testing.T) {
	testEnv(t)
	got, _, err := execute(t, "", "convert", "-f", "json", "KYA")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	for _, want := range []string{`"grid"`, `"unicode"`, `"text": "KYA"`, `"palatalized": true`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s:\n%s", want, got)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad token", []string{"convert", "KA", "QA"}, errors.ErrCodeInvalidToken},
		{"lowercase", []string{"convert", "ka"}, errors.ErrCodeInvalidToken},
		{"format", []string{"convert", "-f", "svg", "KA"}, errors.ErrCodeInvalidFormat},
		{"glyphs", []string{"convert", "--raised", "o", "--flat", "o", "KA"}, errors.ErrCodeInvalidGlyphs},
		{"missing file", []string{"convert", "-i", "/nonexistent/input.txt"}, errors.ErrCodeFileNotFound},
		{"args and file", []string{"convert", "-i", "x.txt", "KA"}, errors.ErrCodeInvalidInput},
		{"empty stdin", []string{"convert"}, errors.ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)
			_, _, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestConvertDecompositionDetail(t *testing.T) {
	testEnv(t)
	_, _, err := execute(t, "", "convert", "KA", "KYO", "XU")
	var de *tenji.DecompositionError
	if !stderrors.As(err, &de) {
		t.Fatalf("error = %v, want *tenji.DecompositionError in chain", err)
	}
	if de.Index != 2 || de.Token != "XU" {
		t.Errorf("DecompositionError = %+v, want token 2 XU", de)
	}
}

func TestConvertFiles(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte("KA\n  SI\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := execute(t, "", "convert", "-i", in, "-o", out, "--stats")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing when writing a file", stdout)
	}
	if !strings.Contains(stderr, "Converted 2 tokens") || !strings.Contains(stderr, "2 cells") {
		t.Errorf("stderr = %q", stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "o- o-\n-- oo\n-o -o\n" {
		t.Errorf("file = %q", data)
	}
}

func TestConvertOversizedInput(t *testing.T) {
	testEnv(t)
	// Whitespace runs shrink below the limit once collapsed.
	big := strings.Repeat("A  ", 30000)

	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, []byte(big), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"stdin", big, []string{"convert", "--no-cache"}},
		{"file", "", []string{"convert", "--no-cache", "-i", path}},
		{"inspect stdin", big, []string{"inspect"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.stdin, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("error = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(err.Error(), "too long") {
				t.Errorf("error = %q, want a length message", err)
			}
			if stdout != "" {
				t.Errorf("stdout = %d bytes, want no output", len(stdout))
			}
		})
	}
}

func TestConvertCachedStats(t *testing.T) {
	testEnv(t)
	if _, _, err := execute(t, "", "convert", "SA"); err != nil {
		t.Fatal(err)
	}
	_, stderr, err := execute(t, "", "convert", "--stats", "SA")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, iconCached) {
		t.Errorf("stderr = %q, want cached marker", stderr)
	}

	_, stderr, err = execute(t, "", "convert", "--stats", "--refresh", "SA")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, iconFresh) {
		t.Errorf("stderr = %q, want fresh marker after --refresh", stderr)
	}
}

func TestConfigFile(t *testing.T) {
	dir := testEnv(t)
	writeConfig(t, dir, "format = \"unicode\"\n[glyphs]\nraised = \"#\"\n")

	got, _, err := execute(t, "", "convert", "KA")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if got != "⠡\n" {
		t.Errorf("output = %q, want config format", got)
	}

	got, _, err = execute(t, "", "convert", "-f", "text", "A")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if got != "#-\n--\n--\n" {
		t.Errorf("output = %q, want flag format with config glyphs", got)
	}
}

func TestConfigFlag(t *testing.T) {
	testEnv(t)
	path := writeConfig(t, t.TempDir(), `format = "unicode"`)

	got, _, err := execute(t, "", "--config", path, "convert", "KA")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	if got != "⠡\n" {
		t.Errorf("output = %q", got)
	}
}

func TestConfigInvalid(t *testing.T) {
	dir := testEnv(t)
	writeConfig(t, dir, `format = "svg"`)

	_, _, err := execute(t, "", "convert", "KA")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := testEnv(t)
	path := filepath.Join(dir, "config.toml")

	got, _, err := execute(t, "", "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != path {
		t.Errorf("config path = %q, want %q", got, path)
	}

	got, _, err = execute(t, "", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `format = "text"`) || !strings.Contains(got, "[glyphs]") {
		t.Errorf("config show = %q", got)
	}

	if _, _, err := execute(t, "", "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config init did not write %s: %v", path, err)
	}
	if _, _, err := execute(t, "", "config", "init"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("second init error = %v, want INVALID_CONFIG", err)
	}
	if _, _, err := execute(t, "", "config", "init", "--force"); err != nil {
		t.Errorf("init --force error: %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	testEnv(t)

	got, _, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(got) != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	_, stderr, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cache is empty") {
		t.Errorf("clear on empty cache: %q", stderr)
	}

	for _, text := range []string{"KA", "SI"} {
		if _, _, err := execute(t, "", "convert", text); err != nil {
			t.Fatal(err)
		}
	}
	_, stderr, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cleared 2 cached entries") {
		t.Errorf("clear = %q", stderr)
	}
}

func TestInspect(t *testing.T) {
	testEnv(t)
	got, _, err := execute(t, "", "inspect", "GGYA", "N")
	if err != nil {
		t.Fatalf("execute() error: %v", err)
	}
	for _, want := range []string{
		"GGYA",
		"voiced",
		"geminated, palatalized",
		"001000 010100 100001",
		"2 4-5 1-6",
		"000111",
		"-- -o o- --",
		"2 tokens · 4 cells",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output missing %q:\n%s", want, got)
		}
	}
}

func TestInspectError(t *testing.T) {
	testEnv(t)
	if _, _, err := execute(t, "", "inspect", "NN"); !errors.Is(err, errors.ErrCodeInvalidToken) {
		t.Errorf("error = %v, want INVALID_TOKEN", err)
	}
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		got, _, err := execute(t, "", "completion", shell)
		if err != nil {
			t.Fatalf("completion %s error: %v", shell, err)
		}
		if !strings.Contains(got, "tenji") {
			t.Errorf("completion %s output does not mention tenji", shell)
		}
	}
	if _, _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded, want error")
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheBackend(t *testing.T) {
	tests := []struct {
		enabled bool
		url     string
		want    string
	}{
		{false, "redis://localhost:6379", "off"},
		{true, "redis://localhost:6379", "redis"},
		{true, "", "file"},
	}
	for _, tt := range tests {
		if got := cacheBackend(tt.enabled, tt.url); got != tt.want {
			t.Errorf("cacheBackend(%v, %q) = %q, want %q", tt.enabled, tt.url, got, tt.want)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", "svg"))
	if got := buf.String(); !strings.Contains(got, `invalid format: "svg"`) || strings.Contains(got, "INVALID_FORMAT") {
		t.Errorf("PrintError() = %q", got)
	}
}
