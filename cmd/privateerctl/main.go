// Package main is the entry point for the privateerctl CLI.
//
// The binary wraps docker compose with fixed option sets for the
// privateerr service stack. All functionality lives in the internal/cli
// package, which defines the cobra commands.
package main

import (
	"github.com/mmr-tortoise/privateerctl/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. They provide binary identification for --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
