package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/scfg/pkg/codegen"
)

var (
	genPackage string
	genType    string
)

var genCmd = &cobra.Command{
	Use:   "gen [file]",
	Short: "Generate Go bindings for an scfg document",
	Long: `Treats the document as a schema and prints Go source declaring
typed structs plus loader functions that populate them from a parsed
document. Warnings about schema shapes that cannot be mapped go to
stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVar(&genPackage, "package", "config", "package name of the generated file")
	genCmd.Flags().StringVar(&genType, "type", "Config", "name of the root struct")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	doc, name, err := parseInput(args, 0)
	if err != nil {
		reportParseError(name, err)
		return err
	}

	result, err := codegen.Generate(doc, codegen.Options{
		Package:  genPackage,
		TypeName: genType,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Print(result.Code)
	return nil
}
