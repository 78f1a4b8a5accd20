// Package cli — checks.go implements the stand-alone pre-flight
// commands "build-depends" and "pia-creds".
//
// The same validations gate build/up implicitly; these commands expose
// them directly so users and CI can probe the environment without
// touching the stack.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/preflight"
)

// NewBuildDependsCommand creates the "build-depends" cobra command,
// which verifies every required external executable resolves on PATH.
func NewBuildDependsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build-depends",
		Short: "Verify required executables are on PATH",
		Long: `Check that every required external tool (default: docker) resolves to
an executable on PATH. The first missing tool fails the check, naming it.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runBuildDepends(cfg, preflight.NewChecker())
		},
	}
}

// runBuildDepends runs the dependency check and confirms each tool on
// success, one line per tool.
func runBuildDepends(cfg *config.Config, chk *preflight.Checker) error {
	if err := chk.Dependencies(cfg.RequiredTools); err != nil {
		return err
	}
	for _, tool := range cfg.RequiredTools {
		fmt.Printf("%s: OK\n", tool)
	}
	return nil
}

// NewCredsCommand creates the "pia-creds" cobra command, which verifies
// the credential environment variables are set and non-empty.
func NewCredsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pia-creds",
		Short: "Verify PIA_USER and PIA_PASS are set",
		Long: `Check that ` + config.EnvPIAUser + ` and ` + config.EnvPIAPass + ` are set and non-empty.
The first missing variable fails the check with an export instruction;
the values themselves are never printed or stored.`,

		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreds(preflight.NewChecker())
		},
	}
}

// runCreds runs the credential check and confirms both variables on
// success without echoing their values.
func runCreds(chk *preflight.Checker) error {
	if err := chk.Credentials(); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n%s: OK\n", config.EnvPIAUser, config.EnvPIAPass)
	return nil
}
