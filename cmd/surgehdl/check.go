package main

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"surgehdl/internal/cache"
	"surgehdl/internal/compilation"
	"surgehdl/internal/config"
	"surgehdl/internal/diag"
	"surgehdl/internal/diagfmt"
	"surgehdl/internal/logging"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Lex, preprocess, parse, and register every given source file",
	Long: `check runs every file through the preprocessor and parser, registers their
top-level definitions in a shared compilation, and reports every diagnostic
produced. With no file arguments, it loads the file list from surgehdl.toml.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("cache", false, "skip unchanged files using the on-disk check cache")
	checkCmd.Flags().Int("jobs", 0, "max parallel parse workers (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	useCache, _ := cmd.Flags().GetBool("cache")
	jobs, _ := cmd.Flags().GetInt("jobs")
	projectDir, _ := cmd.Root().PersistentFlags().GetString("project")

	log := logging.New(cmd.ErrOrStderr(), quiet, resolveColor(cmd, os.Stderr), timings)

	paths, ppOpts, err := resolveSources(args, projectDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no source files given and no surgehdl.toml found")
	}

	var diskCache *cache.DiskCache
	if useCache {
		diskCache, err = cache.Open("surgehdl")
		if err != nil {
			log.Warn("disk cache unavailable: %v", err)
		}
	}

	fingerprint := ppOpts.fingerprint()
	toParse := make([]string, 0, len(paths))
	for _, p := range paths {
		if diskCache == nil {
			toParse = append(toParse, p)
			continue
		}
		content, readErr := os.ReadFile(p) // #nosec G304 -- path is from CLI args or a manifest the user controls
		if readErr != nil {
			toParse = append(toParse, p)
			continue
		}
		hash := sha256.Sum256(content)
		var payload cache.FilePayload
		hit, getErr := diskCache.Get(cache.KeyFor(hash, fingerprint), &payload)
		if getErr == nil && hit && payload.Clean {
			log.Info("%s: up to date (cached)", p)
			continue
		}
		toParse = append(toParse, p)
	}

	fset := source.NewFileSet()
	strings_ := source.NewInterner()
	comp := compilation.NewCompilation(fset)

	results, err := compilation.ParseFiles(context.Background(), fset, strings_, toParse, compilation.ParseFilesOptions{
		Jobs:                  jobs,
		MaxDiagnosticsPerFile: maxDiagnostics,
		KeywordVersion:        ppOpts.keywordVersion,
		IncludeDirs:           ppOpts.includeDirs,
		Predefines:            ppOpts.predefines,
		Undefines:             ppOpts.undefines,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, r := range results {
		if r.LoadErr != nil {
			log.Error("%s: %v", r.Path, r.LoadErr)
			continue
		}
		comp.AddSyntaxTree(r.Tree, r.Diagnostics)
	}

	all := comp.GetAllDiagnostics()

	byFile := make(map[source.FileID][]diag.Diagnostic, len(toParse))
	for _, d := range all {
		byFile[d.Primary.File] = append(byFile[d.Primary.File], d)
	}

	hasErrors := false
	color := resolveColor(cmd, os.Stdout)
	for _, r := range results {
		if r.LoadErr != nil {
			continue
		}
		bag := diag.NewBag(maxDiagnostics)
		errCount := 0
		for _, d := range byFile[r.SourceFile] {
			bag.Add(d)
			if d.Severity == diag.SevError {
				hasErrors = true
				errCount++
			}
		}

		var rendered strings.Builder
		diagfmt.Pretty(&rendered, bag, fset, diagfmt.PrettyOpts{Color: false, Context: 1})
		if color {
			diagfmt.Pretty(os.Stdout, bag, fset, diagfmt.PrettyOpts{Color: true, Context: 1})
		} else {
			fmt.Fprint(os.Stdout, rendered.String())
		}

		if diskCache != nil {
			f := fset.Get(r.SourceFile)
			payload := &cache.FilePayload{
				Path:          r.Path,
				ContentHash:   f.Hash,
				ErrorCount:    errCount,
				Clean:         bag.Len() == 0,
				RenderedDiags: rendered.String(),
			}
			if putErr := diskCache.Put(cache.KeyFor(f.Hash, fingerprint), payload); putErr != nil {
				log.Warn("failed to write cache entry for %s: %v", r.Path, putErr)
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("errors found")
	}
	log.Info("checked %d file(s), %d skipped via cache", len(toParse), len(paths)-len(toParse))
	return nil
}

// ppOptions bundles the preprocessor configuration resolveSources derives
// from either CLI flags or a loaded surgehdl.toml manifest.
type ppOptions struct {
	keywordVersion token.KeywordVersion
	includeDirs    source.IncludeDirs
	predefines     []string
	undefines      []string
}

// fingerprint hashes the preprocessor-relevant fields into half of a cache
// key. It covers the same settings as config.Config.Fingerprint but encodes
// them differently, so the two digests are not interchangeable.
func (o ppOptions) fingerprint() [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00", o.keywordVersion)
	for _, d := range o.includeDirs {
		h.Write([]byte(d))
		h.Write([]byte{0})
	}
	h.Write([]byte{0})
	for _, p := range o.predefines {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	h.Write([]byte{0})
	for _, u := range o.undefines {
		h.Write([]byte(u))
		h.Write([]byte{0})
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// resolveSources resolves the list of files to check and the preprocessor
// configuration to check them under: explicit CLI args win outright (no
// manifest preprocessor settings apply), otherwise a surgehdl.toml manifest
// found under projectDir (or the working directory) supplies both.
func resolveSources(args []string, projectDir string) ([]string, ppOptions, error) {
	if len(args) > 0 {
		return args, ppOptions{}, nil
	}

	manifest, ok, err := config.Load(projectDir)
	if err != nil {
		return nil, ppOptions{}, err
	}
	if !ok {
		return nil, ppOptions{}, nil
	}

	opts := ppOptions{
		keywordVersion: manifest.Config.KeywordVersion(),
		includeDirs:    source.IncludeDirs(manifest.Config.AbsoluteIncludeDirs(manifest.Root)),
		predefines:     manifest.Config.Sources.Predefines,
		undefines:      manifest.Config.Sources.Undefines,
	}
	return manifest.Config.AbsoluteFiles(manifest.Root), opts, nil
}
