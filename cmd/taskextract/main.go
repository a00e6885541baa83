// Package main implements taskextract, a command-line front end that runs
// the task extraction pipeline against a local PDF.
package main

import (
	"os"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
