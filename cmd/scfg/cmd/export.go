package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazu/scfg/pkg/scfg"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Render an scfg document as JSON or YAML",
	Long: `Converts the document into a generic mapping: each directive
name maps to a list of entries carrying "params" and, for blocks, a
nested "child" mapping. Key order follows the output encoder, not the
document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, name, err := parseInput(args, 0)
	if err != nil {
		reportParseError(name, err)
		return err
	}

	value := docValue(doc)
	switch exportFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(value)
	default:
		err := fmt.Errorf("unknown format %q (use json or yaml)", exportFormat)
		fmt.Fprintln(os.Stderr, err)
		return err
	}
}

func docValue(doc *scfg.Document) map[string]any {
	out := make(map[string]any, len(doc.Names()))
	for _, name := range doc.Names() {
		var entries []any
		for _, dir := range doc.GetAll(name) {
			entry := map[string]any{}
			if len(dir.Params()) > 0 {
				entry["params"] = dir.Params()
			}
			if dir.Child() != nil {
				entry["child"] = docValue(dir.Child())
			}
			entries = append(entries, entry)
		}
		out[name] = entries
	}
	return out
}
