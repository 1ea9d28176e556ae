package main

import (
	"os"

	"github.com/chazu/scfg/cmd/scfg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
