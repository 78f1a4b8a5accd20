// Package cli — up.go implements the "privateerctl up" command (and its
// "run" alias, and the bare-invocation default).
//
// Up starts the whole stack in the foreground with the configured up
// options; by default that forces a rebuild, recreation, and a fresh
// base-image pull. Both pre-flight checks gate it: the stack is useless
// without docker, and the VPN container refuses to start without
// credentials, so failing here is clearer than failing inside compose.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/compose"
	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/preflight"
)

// NewUpCommand creates the "up" cobra command. "run" is a pure alias:
// cobra dispatches both names to the same handler, so the external
// invocation is identical.
func NewUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "up",
		Aliases: []string{"run"},
		Short:   "Start the stack (checks tools and credentials first)",
		Long: `Start the compose stack in the foreground with the configured up
options (default: --build --force-recreate --pull always).

Requires all tools from the dependency check and non-empty PIA_USER and
PIA_PASS. Override the options with ` + config.EnvUpOptions + `.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return upFromEnv(cmd.Context())
		},
	}
}

// upFromEnv wires the production collaborators and runs up. Shared with
// the root command's bare-invocation default.
func upFromEnv(ctx context.Context) error {
	cfg, cc, chk, err := loadDeps()
	if err != nil {
		return err
	}
	return runUp(ctx, cfg, cc, chk)
}

// runUp is the up command logic: both pre-flight checks, then one
// compose invocation whose exit status propagates verbatim.
func runUp(ctx context.Context, cfg *config.Config, cc *compose.Client, chk *preflight.Checker) error {
	if err := chk.Dependencies(cfg.RequiredTools); err != nil {
		return err
	}
	if err := chk.Credentials(); err != nil {
		return err
	}

	VerboseLog("Starting stack from %s", cfg.ComposeFile)
	return cc.Up(ctx)
}
