// ABOUTME: Entry point for the outlab CLI, HTTP API, and MCP server
// ABOUTME: Hands the command line to the cobra tree in package cli
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/outlab/cli"
)

const version = "0.1.0"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
