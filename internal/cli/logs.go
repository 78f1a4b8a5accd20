// Package cli — logs.go implements the "privateerctl logs" command.
//
// Logs streams the stack's output with the configured log options; the
// default -f follows until the compose process ends or the user
// interrupts it. Cancellation is entirely the wrapped tool's signal
// handling — this command just waits.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/compose"
	"github.com/mmr-tortoise/privateerctl/internal/config"
)

// NewLogsCommand creates the "logs" cobra command. No pre-flight checks:
// if docker is missing the invocation fails with its own clear error,
// and credentials are irrelevant for reading logs.
func NewLogsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Stream stack logs until interrupted",
		Long: `Stream logs from the compose stack with the configured log options
(default: -f, following continuously).

Override the options with ` + config.EnvLogsOptions + `.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cc, _, err := loadDeps()
			if err != nil {
				return err
			}
			return runLogs(cmd.Context(), cfg, cc)
		},
	}
}

// runLogs is the logs command logic: a single streaming invocation.
func runLogs(ctx context.Context, cfg *config.Config, cc *compose.Client) error {
	VerboseLog("Streaming logs from %s", cfg.ComposeFile)
	return cc.Logs(ctx)
}
