// Package main provides the datavis command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/datavis/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
