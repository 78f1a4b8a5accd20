// Package cli implements the cobra-based commands for privateerctl.
//
// Each subcommand (build, up, down, logs, build-depends, pia-creds) is
// defined in its own file within this package. This file defines the root
// command, the global --verbose flag, and the exit-code handling shared by
// every command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/compose"
	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/model"
	"github.com/mmr-tortoise/privateerctl/internal/preflight"
)

// verbose enables detailed trace output on stderr. Bound to a persistent
// flag on the root command so every subcommand inherits it.
var verbose bool

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package for --version output.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Running the bare binary is the same as running "up": the default
// operation starts the stack. Everything else is a named subcommand.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "privateerctl",
		Short: "Lifecycle shortcuts for the privateerr compose stack",
		Long: `privateerctl wraps docker compose with fixed option sets for the
privateerr service stack, plus pre-flight checks for required tools and
Private Internet Access credentials.

Operations:
  (none), up, run   start the stack (checks tools and credentials first)
  build             build the service image (checks tools and credentials first)
  down, clean       tear the stack down and best-effort remove its base image
  logs              stream stack logs until interrupted
  build-depends     verify required executables are on PATH
  pia-creds         verify PIA_USER and PIA_PASS are set
  help              show this text

Defaults can be overridden via the COMPOSE_SERVICE_NAME, COMPOSE_DOWN_TIMEOUT,
COMPOSE_BUILD_OPTIONS, COMPOSE_UP_OPTIONS, COMPOSE_DOWN_OPTIONS, and
COMPOSE_LOGS_OPTIONS environment variables, or pinned per-repo in an
optional .privateerctl.json project file.`,

		// Errors are formatted by Execute, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Bare invocation delegates to up.
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return upFromEnv(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewUpCommand())
	rootCmd.AddCommand(NewDownCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewBuildDependsCommand())
	rootCmd.AddCommand(NewCredsCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into process exit
// codes. CLIError values carry their own code — including codes copied
// verbatim from a failed docker compose child — and anything else exits 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr)
			os.Exit(int(cliErr.Code))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes a CLIError to stderr. The underlying compose output
// has already been streamed, so only the summary line is added here.
func printError(err *model.CLIError) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// loadDeps resolves the configuration and builds the production
// collaborators for a command run. Command logic functions take these
// explicitly so tests can substitute fakes.
func loadDeps() (*config.Config, *compose.Client, *preflight.Checker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, newComposeClient(cfg), preflight.NewChecker(), nil
}

// newComposeClient builds a compose client from a configuration
// snapshot, backed by a real process runner.
func newComposeClient(cfg *config.Config) *compose.Client {
	return compose.NewClient(composeOptions(cfg), compose.NewExecRunner())
}

// composeOptions maps the configuration snapshot onto the compose
// package's option struct.
func composeOptions(cfg *config.Config) compose.Options {
	return compose.Options{
		ServiceName:  cfg.ServiceName,
		ComposeFile:  cfg.ComposeFile,
		BuildOptions: cfg.BuildOptions,
		UpOptions:    cfg.UpOptions,
		DownOptions:  cfg.DownOptions,
		LogsOptions:  cfg.LogsOptions,
	}
}
