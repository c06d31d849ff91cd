// Package config loads a project's surgehdl.toml manifest: the source file
// list, include search path, predefined macros, and the top-level module
// to elaborate.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"surgehdl/internal/token"
)

const manifestFileName = "surgehdl.toml"

// Manifest is a loaded surgehdl.toml, its declared path and root directory
// alongside the decoded configuration.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded shape of surgehdl.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Sources SourcesConfig `toml:"sources"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig identifies the project itself.
type PackageConfig struct {
	Name string `toml:"name"`
}

// SourcesConfig lists the files a check/build run should compile, along with
// the preprocessor environment they compile under.
type SourcesConfig struct {
	Files       []string `toml:"files"`
	IncludeDirs []string `toml:"include_dirs"`
	Predefines  []string `toml:"predefines"`
	Undefines   []string `toml:"undefines"`
	Keywords    string   `toml:"keywords"` // e.g. "1800-2017", "1800-2012"; empty selects the default
}

// BuildConfig names the module the toolchain elaborates as the design root.
type BuildConfig struct {
	Top string `toml:"top"`
}

// KeywordVersion resolves the manifest's Keywords string to a
// token.KeywordVersion, defaulting to token.DefaultKeywordVersion.
func (c Config) KeywordVersion() token.KeywordVersion {
	switch strings.TrimSpace(c.Sources.Keywords) {
	case "1364-1995":
		return token.KeywordVersion1364_1995
	case "1364-2001-noconfig":
		return token.KeywordVersion1364_2001NoConfig
	case "1364-2001":
		return token.KeywordVersion1364_2001
	case "1364-2005":
		return token.KeywordVersion1364_2005
	case "1800-2005":
		return token.KeywordVersion1800_2005
	case "1800-2009":
		return token.KeywordVersion1800_2009
	case "1800-2012":
		return token.KeywordVersion1800_2012
	case "1800-2017", "":
		return token.KeywordVersion1800_2017
	default:
		return token.DefaultKeywordVersion
	}
}

// AbsoluteFiles resolves every entry of Sources.Files against root.
func (c Config) AbsoluteFiles(root string) []string {
	out := make([]string, len(c.Sources.Files))
	for i, f := range c.Sources.Files {
		out[i] = filepath.Join(root, filepath.FromSlash(f))
	}
	return out
}

// AbsoluteIncludeDirs resolves every entry of Sources.IncludeDirs against root.
func (c Config) AbsoluteIncludeDirs(root string) []string {
	out := make([]string, len(c.Sources.IncludeDirs))
	for i, d := range c.Sources.IncludeDirs {
		out[i] = filepath.Join(root, filepath.FromSlash(d))
	}
	return out
}

// Fingerprint hashes the preprocessor-relevant fields of Sources (everything
// other than the file list itself) into a stable digest, used as half of a
// cache key so a file's cached check result is invalidated whenever the
// configuration it was checked under changes.
func (c Config) Fingerprint() [32]byte {
	h := sha256.New()
	h.Write([]byte(c.Sources.Keywords))
	h.Write([]byte{0})
	for _, d := range c.Sources.IncludeDirs {
		h.Write([]byte(d))
		h.Write([]byte{0})
	}
	h.Write([]byte{0})
	for _, p := range c.Sources.Predefines {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	h.Write([]byte{0})
	for _, u := range c.Sources.Undefines {
		h.Write([]byte(u))
		h.Write([]byte{0})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// FindManifest walks upward from startDir looking for surgehdl.toml,
// stopping at the filesystem root.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load walks upward from startDir for a manifest and decodes it, validating
// that [package].name and [sources].files are present.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decode(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func decode(path string) (Config, error) {
	var cfg Config
	// #nosec G304 -- path comes from a directory walk the caller controls
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("sources") || len(cfg.Sources.Files) == 0 {
		return Config{}, fmt.Errorf("%s: [sources].files must list at least one file", path)
	}
	return cfg, nil
}
