package main

import (
	"os"

	"github.com/quantrail/polyledger/cmd/polyledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
