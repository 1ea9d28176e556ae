package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat an scfg document",
	Long: `Parses a document and re-emits it normalized: tab indentation,
canonical quoting, comments dropped. With -w the file is rewritten in
place instead of printing to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the source file")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	doc, name, err := parseInput(args, 0)
	if err != nil {
		reportParseError(name, err)
		return err
	}

	if fmtWrite {
		if len(args) == 0 || args[0] == "-" {
			err := fmt.Errorf("-w requires a file argument")
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		if err := os.WriteFile(args[0], []byte(doc.String()), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		return nil
	}

	return doc.Write(os.Stdout)
}
