package main

import (
	"os"

	"github.com/cwbudde/algo-vis/cmd/avis/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
