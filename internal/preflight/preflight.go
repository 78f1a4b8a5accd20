// Package preflight implements the validations that gate compose
// invocations: required executables must resolve on PATH, and the PIA
// credential variables must be set before build/up.
//
// Both checks fail fast on the first problem found and never aggregate
// failures — the resulting message names exactly one missing tool or
// variable, keeping the fix obvious.
package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mmr-tortoise/privateerctl/internal/config"
	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// Checker runs pre-flight validations. The lookup functions default to
// the real os/exec and os implementations; tests substitute fakes to
// simulate missing tools or credentials without touching the process
// environment.
type Checker struct {
	// LookPath resolves an executable name on the search path.
	LookPath func(name string) (string, error)

	// Getenv reads an environment variable.
	Getenv func(key string) string
}

// NewChecker returns a Checker backed by the real PATH and environment.
func NewChecker() *Checker {
	return &Checker{
		LookPath: exec.LookPath,
		Getenv:   os.Getenv,
	}
}

// Dependencies verifies that every tool in the list resolves to an
// executable. The first missing tool aborts the whole check with
// ExitMissingDependency; no compose command runs after a failure.
func (c *Checker) Dependencies(tools []string) error {
	for _, tool := range tools {
		if _, err := c.LookPath(tool); err != nil {
			return model.WrapCLIError(model.ExitMissingDependency,
				fmt.Sprintf("required tool %q not found on PATH", tool), err)
		}
	}
	return nil
}

// Credentials verifies that PIA_USER and PIA_PASS are set and non-empty,
// in that order. Only the first missing variable is reported: a user who
// has set neither fixes them one at a time, and the second failure
// surfaces on the next run.
func (c *Checker) Credentials() error {
	for _, key := range []string{config.EnvPIAUser, config.EnvPIAPass} {
		if c.Getenv(key) == "" {
			return model.NewCLIError(model.ExitMissingCredential,
				fmt.Sprintf("%s is not set — export your Private Internet Access credentials, e.g. export %s=...", key, key))
		}
	}
	return nil
}
