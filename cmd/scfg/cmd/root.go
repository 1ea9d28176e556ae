package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/scfg/pkg/scfg"
)

var preserveOrder bool

var rootCmd = &cobra.Command{
	Use:   "scfg",
	Short: "Parse, format and convert scfg configuration files",
	Long: `scfg works with simple line-oriented configuration files: one
directive per line, optional parameters, optional { } child blocks,
and # comments.

Subcommands read a file argument or, when it is absent or "-", stdin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors have already been reported on stderr by
// the failing subcommand.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&preserveOrder, "preserve-order", false,
		"keep directive names in first-appearance order instead of sorting them")
}

func docOptions() []scfg.Option {
	if preserveOrder {
		return []scfg.Option{scfg.WithOrdering(scfg.PreserveOrder)}
	}
	return nil
}

// parseInput parses the document named by args[idx], falling back to
// stdin. It returns the document and the display name used in messages.
func parseInput(args []string, idx int) (*scfg.Document, string, error) {
	if len(args) > idx && args[idx] != "-" {
		path := args[idx]
		doc, err := scfg.ParseFile(path, docOptions()...)
		return doc, path, err
	}
	doc, err := scfg.Parse(os.Stdin, docOptions()...)
	return doc, "<stdin>", err
}

// reportParseError prints err in file:line: message form when it is a
// parse error, and verbatim otherwise.
func reportParseError(name string, err error) {
	var perr *scfg.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "%s:%d: %v\n", name, perr.Line, perr.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
}
