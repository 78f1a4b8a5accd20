// Package cli — build.go implements the "privateerctl build" command.
//
// Build rebuilds the configured service's image with the configured
// build options; by default that pulls fresh base layers and disables
// the layer cache, so the result matches what CI would produce.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/compose"
	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/model"
	"github.com/mmr-tortoise/privateerctl/internal/preflight"
)

// NewBuildCommand creates the "build" cobra command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the service image (checks tools and credentials first)",
		Long: `Build the image for the configured service with the configured build
options (default: --pull --no-cache).

Requires all tools from the dependency check and non-empty PIA_USER and
PIA_PASS. Override the options with ` + config.EnvBuildOptions + ` and the
target service with ` + config.EnvServiceName + `.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cc, chk, err := loadDeps()
			if err != nil {
				return err
			}
			return runBuild(cmd.Context(), cfg, cc, chk)
		},
	}
}

// runBuild is the build command logic. Pre-flight checks run first and
// abort before anything external is invoked; then the service name is
// validated against the compose file so a typo in COMPOSE_SERVICE_NAME
// fails with the defined services listed instead of a compose error.
func runBuild(ctx context.Context, cfg *config.Config, cc *compose.Client, chk *preflight.Checker) error {
	if err := chk.Dependencies(cfg.RequiredTools); err != nil {
		return err
	}
	if err := chk.Credentials(); err != nil {
		return err
	}

	file, err := compose.LoadFile(cfg.ComposeFile)
	if err != nil {
		return err
	}
	if !file.HasService(cfg.ServiceName) {
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("service %q not defined in %s (defined: %s)",
				cfg.ServiceName, cfg.ComposeFile, strings.Join(file.ServiceNames(), ", ")))
	}

	VerboseLog("Building service %q from %s", cfg.ServiceName, cfg.ComposeFile)
	return cc.Build(ctx)
}
