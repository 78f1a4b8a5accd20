package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRunner implements Runner and records every invocation
// instead of spawning processes.
type recordingRunner struct {
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	call := append([]string{name}, args...)
	r.calls = append(r.calls, call)
	return r.err
}

// testOptions returns a fixed configuration for invocation tests.
func testOptions() Options {
	return Options{
		ServiceName:  "privateerr",
		ComposeFile:  "docker-compose.yml",
		BuildOptions: []string{"--pull", "--no-cache"},
		UpOptions:    []string{"--build", "--force-recreate", "--pull", "always"},
		DownOptions:  []string{"-t", "30", "--rmi", "all", "-v"},
		LogsOptions:  []string{"-f"},
	}
}

// TestBuild verifies the build invocation: configured options followed
// by the target service name.
func TestBuild(t *testing.T) {
	runner := &recordingRunner{}
	c := NewClient(testOptions(), runner)

	require.NoError(t, c.Build(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"docker", "compose", "-f", "docker-compose.yml",
		"build", "--pull", "--no-cache", "privateerr",
	}, runner.calls[0])
}

// TestUp verifies the up invocation carries only the up options and no
// service argument.
func TestUp(t *testing.T) {
	runner := &recordingRunner{}
	c := NewClient(testOptions(), runner)

	require.NoError(t, c.Up(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"docker", "compose", "-f", "docker-compose.yml",
		"up", "--build", "--force-recreate", "--pull", "always",
	}, runner.calls[0])
}

// TestDown verifies the teardown invocation.
func TestDown(t *testing.T) {
	runner := &recordingRunner{}
	c := NewClient(testOptions(), runner)

	require.NoError(t, c.Down(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"docker", "compose", "-f", "docker-compose.yml",
		"down", "-t", "30", "--rmi", "all", "-v",
	}, runner.calls[0])
}

// TestLogs verifies the logs invocation.
func TestLogs(t *testing.T) {
	runner := &recordingRunner{}
	c := NewClient(testOptions(), runner)

	require.NoError(t, c.Logs(context.Background()))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"docker", "compose", "-f", "docker-compose.yml", "logs", "-f",
	}, runner.calls[0])
}

// TestOptionIsolation verifies that overriding the up options changes
// the up invocation and nothing else.
func TestOptionIsolation(t *testing.T) {
	opts := testOptions()
	opts.UpOptions = []string{"-d"}

	defaultRunner := &recordingRunner{}
	overriddenRunner := &recordingRunner{}
	require.NoError(t, NewClient(testOptions(), defaultRunner).Down(context.Background()))
	overridden := NewClient(opts, overriddenRunner)
	require.NoError(t, overridden.Down(context.Background()))
	require.NoError(t, overridden.Up(context.Background()))

	// Down is identical under both option sets.
	assert.Equal(t, defaultRunner.calls[0], overriddenRunner.calls[0])

	// Up reflects the override.
	assert.Equal(t, []string{
		"docker", "compose", "-f", "docker-compose.yml", "up", "-d",
	}, overriddenRunner.calls[1])
}
