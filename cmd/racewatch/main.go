// Package main is the entry point for the racewatch CLI/TUI.
package main

import (
	"os"

	"github.com/racewatch/racewatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
