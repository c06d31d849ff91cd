package compilation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"surgehdl/internal/ast"
	"surgehdl/internal/diag"
	"surgehdl/internal/parser"
	"surgehdl/internal/preprocessor"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

// ParsedFile is one file's output from ParseFiles: its own syntax tree and
// the diagnostics its preprocess/parse phases produced.
type ParsedFile struct {
	Path        string
	SourceFile  source.FileID
	Tree        *ast.File
	Diagnostics *diag.Bag
	LoadErr     error
}

// ParseFilesOptions configures the preprocessor every file in a ParseFiles
// batch is parsed with; it applies uniformly across the batch (spec 4.7:
// "the single-threaded contract applies only from addSyntaxTree onward").
type ParseFilesOptions struct {
	// Jobs bounds the number of files parsed concurrently; <= 0 uses
	// runtime.GOMAXPROCS(0).
	Jobs int

	MaxDiagnosticsPerFile int

	KeywordVersion token.KeywordVersion
	IncludeDirs    source.IncludeDirs
	Predefines     []string
	Undefines      []string
}

func (o ParseFilesOptions) maxDiagnostics() int {
	if o.MaxDiagnosticsPerFile <= 0 {
		return 1000
	}
	return o.MaxDiagnosticsPerFile
}

// ParseFiles loads and parses every path concurrently, sharing fset and
// strings across goroutines (spec 4.7; grounded on the teacher driver's
// ParseDir fan-out). Loading happens sequentially first, exactly as in that
// pattern, so the FileSet's own slice is never mutated concurrently; only
// the CPU-bound preprocess/parse phase runs in parallel, bounded by
// opts.Jobs. Results are returned in input order regardless of completion
// order. A context cancellation aborts remaining work and is returned as
// err; errors loading a file are instead recorded on the
// corresponding ParsedFile.LoadErr so one missing file does not lose the
// diagnostics already gathered for the rest of the batch.
func ParseFiles(ctx context.Context, fset *source.FileSet, strings *source.Interner, paths []string, opts ParseFilesOptions) ([]ParsedFile, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	sourceIDs := make([]source.FileID, len(paths))
	loadErrs := make([]error, len(paths))
	for i, path := range paths {
		id, err := fset.Load(path)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		sourceIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]ParsedFile, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())

			if loadErrs[i] != nil {
				results[i] = ParsedFile{Path: path, Diagnostics: bag, LoadErr: loadErrs[i]}
				return nil
			}

			sourceID := sourceIDs[i]
			file := fset.Get(sourceID)
			reporter := diag.BagReporter{Bag: bag}

			pp := preprocessor.New(fset, file, preprocessor.Options{
				Reporter:       reporter,
				KeywordVersion: opts.KeywordVersion,
				IncludeDirs:    opts.IncludeDirs,
				Predefines:     opts.Predefines,
				Undefines:      opts.Undefines,
			})

			tree := parser.ParseFile(pp, ast.FileID(i+1), sourceID, strings, reporter) //nolint:gosec // i+1 fits ast.FileID for any realistic batch size

			results[i] = ParsedFile{Path: path, SourceFile: sourceID, Tree: tree, Diagnostics: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
