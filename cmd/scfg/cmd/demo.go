package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/scfg/pkg/scfg"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print a sample document built with the library API",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	doc := scfg.NewDocument(docOptions()...)
	train := doc.Add("train").AppendParam("Shinkansen").GetOrCreateChild()

	e5 := train.Add("model").AppendParam("E5").GetOrCreateChild()
	e5.Add("max-speed").AppendParam("320km/h")
	e5.Add("weight").AppendParam("453.5t")
	e5.Add("lines-served").AppendParam("Tōhoku").AppendParam("Hokkaido")

	e7 := train.Add("model").AppendParam("E7").GetOrCreateChild()
	e7.Add("max-speed").AppendParam("275km/h")
	e7.Add("weight").AppendParam("540t")
	e7.Add("lines-served").AppendParam("Hokuriku").AppendParam("Jōetsu")

	return doc.Write(os.Stdout)
}
