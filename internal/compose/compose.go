// Package compose composes and executes docker compose invocations for
// the configured stack.
//
// Every operation follows the same shape:
//
//	docker compose -f <file> <subcommand> <configured options> [service]
//
// The option lists come from the resolved configuration; this package
// adds nothing of its own beyond the -f flag and the subcommand, so what
// runs is exactly what the configuration says. Modern Docker ships
// compose as a plugin subcommand, so the binary is "docker" and
// "compose" is the first argument (not the legacy docker-compose).
package compose

import "context"

// Client issues docker compose commands for one configuration snapshot.
type Client struct {
	service string
	file    string

	buildOpts []string
	upOpts    []string
	downOpts  []string
	logsOpts  []string

	runner Runner
}

// Options carries the per-operation argument lists and stack identity
// into NewClient. It mirrors the relevant fields of config.Config
// without importing it, keeping this package free of configuration
// resolution concerns.
type Options struct {
	ServiceName  string
	ComposeFile  string
	BuildOptions []string
	UpOptions    []string
	DownOptions  []string
	LogsOptions  []string
}

// NewClient returns a Client that runs compose commands through runner.
func NewClient(opts Options, runner Runner) *Client {
	return &Client{
		service:   opts.ServiceName,
		file:      opts.ComposeFile,
		buildOpts: opts.BuildOptions,
		upOpts:    opts.UpOptions,
		downOpts:  opts.DownOptions,
		logsOpts:  opts.LogsOptions,
		runner:    runner,
	}
}

// Build runs "docker compose build" with the configured build options,
// targeting the configured service.
func (c *Client) Build(ctx context.Context) error {
	return c.run(ctx, "build", c.buildOpts, c.service)
}

// Up runs "docker compose up" with the configured up options. The stack
// runs in the foreground; interruption is the terminal's business.
func (c *Client) Up(ctx context.Context) error {
	return c.run(ctx, "up", c.upOpts)
}

// Down runs "docker compose down" with the configured down options.
// Image cleanup after teardown is the caller's concern — see the down
// command in internal/cli.
func (c *Client) Down(ctx context.Context) error {
	return c.run(ctx, "down", c.downOpts)
}

// Logs runs "docker compose logs" with the configured log options.
// With the default -f this streams until the user interrupts it.
func (c *Client) Logs(ctx context.Context) error {
	return c.run(ctx, "logs", c.logsOpts)
}

// run assembles the full argument list and delegates to the runner.
func (c *Client) run(ctx context.Context, sub string, opts []string, extra ...string) error {
	args := make([]string, 0, 4+len(opts)+len(extra))
	args = append(args, "compose", "-f", c.file, sub)
	args = append(args, opts...)
	args = append(args, extra...)
	return c.runner.Run(ctx, "docker", args...)
}
