package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/scfg/pkg/shellwords"
)

var getCmd = &cobra.Command{
	Use:   "get <name> [file]",
	Short: "Print the parameters of matching directives",
	Long: `Prints one line of quoted parameters per directive matching
<name>. A dotted name like network.nick descends into child blocks,
following the first directive at each intermediate step.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	doc, name, err := parseInput(args, 1)
	if err != nil {
		reportParseError(name, err)
		return err
	}

	path := strings.Split(args[0], ".")
	for _, seg := range path[:len(path)-1] {
		dir := doc.Get(seg)
		if dir == nil || dir.Child() == nil {
			err := fmt.Errorf("no block named %q", seg)
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		doc = dir.Child()
	}

	last := path[len(path)-1]
	bucket := doc.GetAll(last)
	if bucket == nil {
		err := fmt.Errorf("no directive named %q", last)
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	for _, dir := range bucket {
		fmt.Println(shellwords.Join(dir.Params()...))
	}
	return nil
}
