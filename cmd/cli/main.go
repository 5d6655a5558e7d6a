// Package main is the entry point for the paperbill CLI.
package main

import (
	"os"

	"paperbill/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
