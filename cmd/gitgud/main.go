// Command gitgud is a git assistant that recommends how to sync a branch.
package main

import (
	"os"

	"github.com/kilupskalvis/gitgud/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
