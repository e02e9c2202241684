// Package main provides the CLI entry point for yamldoc, a tool that reads
// and edits YAML configuration files while keeping the comments that
// document their keys.
package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
