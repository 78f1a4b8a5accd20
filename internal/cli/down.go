// Package cli — down.go implements the "privateerctl down" command (and
// its "clean" alias).
//
// Down tears the stack down with the configured options — by default a
// 30-second grace period plus full image and volume removal — and then
// best-effort removes local copies of the base image the service was
// built from, so the next build pulls a fresh one. The cleanup step
// never changes the command's outcome: matching nothing, an unreadable
// Dockerfile, or an unreachable daemon are all reported only in verbose
// output.
package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/compose"
	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/docker"
	"github.com/mmr-tortoise/privateerctl/internal/dockerfile"
	"github.com/mmr-tortoise/privateerctl/internal/preflight"
)

// imageCleaner removes local images matching a base reference. It is a
// separate collaborator so tests can record the reference instead of
// talking to a daemon. Implementations must tolerate an empty reference.
type imageCleaner func(ctx context.Context, ref string)

// NewDownCommand creates the "down" cobra command. "clean" is a pure
// alias dispatching to the same handler.
func NewDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "down",
		Aliases: []string{"clean"},
		Short:   "Tear the stack down and remove its base image",
		Long: `Stop and remove the stack's containers, networks, images, and volumes
with the configured down options (default: -t 30 --rmi all -v), then
best-effort remove local images matching the Dockerfile's base image.

Requires the tools from the dependency check, but not credentials.
Override the options with ` + config.EnvDownOptions + `.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cc, chk, err := loadDeps()
			if err != nil {
				return err
			}
			return runDown(cmd.Context(), cfg, cc, chk, removeBaseImages)
		},
	}
}

// runDown is the down command logic: dependency check, teardown, then
// best-effort base image cleanup. Credentials are not needed — tearing
// down must work even when the user has cleared them.
func runDown(ctx context.Context, cfg *config.Config, cc *compose.Client, chk *preflight.Checker, clean imageCleaner) error {
	if err := chk.Dependencies(cfg.RequiredTools); err != nil {
		return err
	}

	VerboseLog("Tearing down stack from %s", cfg.ComposeFile)
	if err := cc.Down(ctx); err != nil {
		return err
	}

	clean(ctx, baseImageRef(cfg))
	return nil
}

// baseImageRef resolves the Dockerfile for the configured service and
// extracts its base image reference. Every failure yields an empty
// reference — the cleanup that follows is best-effort, so there is no
// error to propagate, only a verbose trace.
func baseImageRef(cfg *config.Config) string {
	path := cfg.Dockerfile
	if path == "" {
		file, err := compose.LoadFile(cfg.ComposeFile)
		if err != nil {
			VerboseLog("Skipping image cleanup: %v", err)
			return ""
		}
		path = file.DockerfileFor(cfg.ServiceName, filepath.Dir(cfg.ComposeFile))
		if path == "" {
			VerboseLog("Service %q has no build section, skipping image cleanup", cfg.ServiceName)
			return ""
		}
	}

	ref, err := dockerfile.BaseImage(path)
	if err != nil {
		VerboseLog("Skipping image cleanup, cannot read %s: %v", path, err)
		return ""
	}
	if ref == "" {
		VerboseLog("No FROM line in %s, skipping image cleanup", path)
	}
	return ref
}

// removeBaseImages is the production imageCleaner. It connects to the
// Docker daemon via the SDK and removes every image matching ref.
// All failures are swallowed into verbose output.
func removeBaseImages(ctx context.Context, ref string) {
	if ref == "" {
		return
	}

	cli, err := docker.NewClient()
	if err != nil {
		VerboseLog("Skipping image cleanup: %v", err)
		return
	}
	defer func() { _ = cli.Close() }()

	removed, err := docker.RemoveImagesByReference(ctx, cli, ref)
	if err != nil {
		VerboseLog("Image cleanup for %q stopped after %d removal(s): %v", ref, removed, err)
		return
	}
	VerboseLog("Removed %d image(s) matching %q", removed, ref)
}
