package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"surgehdl/internal/config"
	"surgehdl/internal/token"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "surgehdl.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "example"

[sources]
files = ["src/top.sv", "src/sub.sv"]
include_dirs = ["include"]
predefines = ["SIM"]
keywords = "1800-2012"

[build]
top = "top"
`)

	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	manifest, ok, err := config.Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("expected to find a manifest by walking upward")
	}
	if manifest.Config.Package.Name != "example" {
		t.Errorf("Package.Name = %q, want %q", manifest.Config.Package.Name, "example")
	}
	if manifest.Config.Build.Top != "top" {
		t.Errorf("Build.Top = %q, want %q", manifest.Config.Build.Top, "top")
	}
	if manifest.Config.KeywordVersion() != token.KeywordVersion1800_2012 {
		t.Errorf("KeywordVersion() = %v, want %v", manifest.Config.KeywordVersion(), token.KeywordVersion1800_2012)
	}

	files := manifest.Config.AbsoluteFiles(manifest.Root)
	if len(files) != 2 || files[0] != filepath.Join(dir, "src/top.sv") {
		t.Errorf("AbsoluteFiles = %v", files)
	}
	dirs := manifest.Config.AbsoluteIncludeDirs(manifest.Root)
	if len(dirs) != 1 || dirs[0] != filepath.Join(dir, "include") {
		t.Errorf("AbsoluteIncludeDirs = %v", dirs)
	}
}

func TestLoadNoManifestFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("expected no manifest to be found in an empty directory")
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]

[sources]
files = ["a.sv"]
`)
	_, _, err := config.Load(dir)
	if err == nil {
		t.Fatal("expected an error for a missing [package].name")
	}
}

func TestLoadMissingSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "example"

[sources]
files = []
`)
	_, _, err := config.Load(dir)
	if err == nil {
		t.Fatal("expected an error for an empty [sources].files")
	}
}

func TestKeywordVersionDefault(t *testing.T) {
	var c config.Config
	if got := c.KeywordVersion(); got != token.KeywordVersion1800_2017 {
		t.Errorf("default KeywordVersion() = %v, want %v", got, token.KeywordVersion1800_2017)
	}
}

func TestFingerprintStableAndSensitive(t *testing.T) {
	a := config.Config{Sources: config.SourcesConfig{
		IncludeDirs: []string{"inc"},
		Predefines:  []string{"SIM"},
	}}
	b := a
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical configs should fingerprint identically")
	}

	c := a
	c.Sources.Predefines = []string{"SIM", "DEBUG"}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("differing predefines should change the fingerprint")
	}
}
