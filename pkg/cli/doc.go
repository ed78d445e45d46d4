// Package cli provides common console utilities for the prochop
// command-line tool.
//
// This package includes:
//   - Output rendering (YAML, JSON, raw) for probe results and manifests
//   - lipgloss styles for the progress and summary display
//   - Persistent defaults loaded from the user config directory
//   - Formatting helpers for durations and byte counts
//
// Example usage:
//
//	// Render a result
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
//
//	// Load persistent defaults
//	cfg, err := cli.LoadConfig()
package cli
