// Package main provides the entry point for the sysstatus CLI.
package main

import (
	"os"

	"github.com/griffithind/sysstatus/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
