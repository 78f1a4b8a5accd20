// runner.go defines the process-runner collaborator used to invoke the
// docker CLI. Keeping the runner behind a one-method interface keeps the
// rest of this package limited to argument composition, and lets tests
// record invocations instead of spawning processes.
package compose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// Runner executes an external command with an argument list, streaming
// its output to the invoking user, and reports the outcome as an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the production Runner backed by os/exec. Stdout, stderr,
// and stdin are wired straight through to the parent process: compose
// output is line-oriented text meant for the user, and this tool never
// parses it. Interactive subcommands (logs -f, foreground up) also rely
// on the inherited stdin and the terminal's signal handling.
type ExecRunner struct{}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and blocks until it exits. A non-zero exit
// is returned as a CLIError carrying the child's own exit code, so the
// CLI propagates the wrapped tool's status verbatim. Failures to start
// the process at all (e.g. binary missing despite the pre-flight check)
// map to ExitGeneralError.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return model.WrapCLIError(model.ExitCode(exitErr.ExitCode()),
				fmt.Sprintf("%s exited with status %d", name, exitErr.ExitCode()), err)
		}
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to run %s", name), err)
	}
	return nil
}
