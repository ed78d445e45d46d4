// Package main is the entry point for the prochop CLI.
//
// Usage:
//
//	prochop [flags] <command> [args]
//
// Commands:
//
//	chop       - Segment an audio recording into per-section files
//	probe      - Inspect an audio or annotation file without writing output
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/prosodylab/prochop/cmd/prochop/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
