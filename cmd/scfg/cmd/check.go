package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate an scfg document",
	Long: `Parses the document and reports the first error in file:line:
message form. Exits 0 when the document parses cleanly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, name, err := parseInput(args, 0)
	if err != nil {
		reportParseError(name, err)
		return err
	}
	fmt.Printf("%s: ok (%d directives)\n", name, doc.Len())
	return nil
}
