// Package main provides the pglens command.
package main

import (
	"os"

	"github.com/leapstack-labs/pglens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
