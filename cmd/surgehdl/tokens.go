package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surgehdl/internal/diag"
	"surgehdl/internal/diagfmt"
	"surgehdl/internal/preprocessor"
	"surgehdl/internal/source"
	"surgehdl/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file",
	Short: "Lex and preprocess a source file, printing its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	fset := source.NewFileSet()
	fileID, err := fset.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	pp := preprocessor.New(fset, fset.Get(fileID), preprocessor.Options{Reporter: reporter})

	var tokens []token.Token
	for {
		tok := pp.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if bag.HasErrors() || bag.HasWarnings() {
		opts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stderr), Context: 1}
		diagfmt.Pretty(os.Stderr, bag, fset, opts)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fset)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
