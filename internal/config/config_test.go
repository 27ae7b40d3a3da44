// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tarsh-cli/internal/testutil"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Shell.DefaultTailLines != DefaultTailLines {
		t.Errorf("tail lines = %d, want default %d", cfg.Shell.DefaultTailLines, DefaultTailLines)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color scheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
}

func TestLoadOverlaysCUEFile(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
ui: {
	verbose: true
}
shell: {
	default_tail_lines: 5
}
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true from file")
	}
	if cfg.Shell.DefaultTailLines != 5 {
		t.Errorf("tail lines = %d, want 5 from file", cfg.Shell.DefaultTailLines)
	}
	// Fields the file omits keep their defaults.
	if cfg.Serve.Port != DefaultServePort {
		t.Errorf("serve port = %d, want untouched default %d", cfg.Serve.Port, DefaultServePort)
	}
}

func TestLoadRejectsInvalidCUESyntax(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), "ui: { this is not cue")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	// Wrong type for a known field must fail schema unification.
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
shell: {
	default_tail_lines: "ten"
}
`)

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want schema error")
	}
}

// Out-of-range values are caught by the schema before struct validation
// ever sees them.
func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), `
shell: {
	default_tail_lines: 0
}
`)

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
}

func TestLoadExplicitFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	testutil.MustWriteFile(t, path, `serve: { port: 2022 }`)

	SetConfigFilePathOverride(path)
	defer Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Serve.Port != 2022 {
		t.Errorf("serve port = %d, want 2022", cfg.Serve.Port)
	}
}

func TestLoadExplicitFileMissingIsError(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	defer Reset()

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for missing explicit file")
	}
}

func TestConfigFilePath(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("ConfigFilePath() = %q", path)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading created config: %v", err)
	}
	if !strings.Contains(string(data), "default_tail_lines: 10") {
		t.Errorf("created config missing defaults: %q", string(data))
	}

	// Creating again must keep the existing file.
	testutil.MustWriteFile(t, path, "ui: { verbose: true }\n")
	again, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}
	if again != path {
		t.Errorf("second path = %q, want %q", again, path)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "verbose: true") {
		t.Error("existing config file was overwritten")
	}
}

// The generated file must parse and validate through the same loader.
func TestGeneratedCUERoundTrips(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	cfg := DefaultConfig()
	cfg.Shell.DefaultTailLines = 7
	cfg.Serve.MetricsAddr = "127.0.0.1:9100"
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), GenerateCUE(cfg))

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if loaded.Shell.DefaultTailLines != 7 {
		t.Errorf("tail lines = %d, want 7", loaded.Shell.DefaultTailLines)
	}
	if loaded.Serve.MetricsAddr != "127.0.0.1:9100" {
		t.Errorf("metrics addr = %q", loaded.Serve.MetricsAddr)
	}
}
