// Package docker wraps the Docker Engine SDK client for the one piece of
// daemon state this tool touches directly: removing local copies of the
// stack's base image after teardown. Compose invocations go through the
// docker CLI instead (see internal/compose); the SDK is only used where
// the CLI equivalent (docker rmi by reference) would need output parsing.
package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// defaultPingTimeout bounds the daemon liveness probe. Five seconds
// covers Docker Desktop on macOS, which responds noticeably slower
// than native Linux Docker.
const defaultPingTimeout = 5 * time.Second

// Client wraps the Docker SDK client with automatic socket detection
// across platforms. Always Close() after use:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
type Client struct {
	// inner is the underlying SDK client. Wrapped rather than embedded
	// to keep the exposed surface down to what teardown cleanup needs.
	inner *client.Client
}

// NewClient creates a Docker client. DOCKER_HOST wins when set;
// otherwise platform-specific default socket paths are probed:
// /var/run/docker.sock on Linux, that plus ~/.docker/run/docker.sock
// on macOS, and the docker_engine named pipe on Windows.
func NewClient() (*Client, error) {
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		return newClientWithHost(host)
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			"Docker socket not found", err)
	}
	return newClientWithHost(host)
}

// newClientWithHost connects to the given Docker host string.
// API version negotiation keeps the client compatible with whatever
// daemon version is installed.
func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create Docker client for host %q", host), err)
	}
	return &Client{inner: c}, nil
}

// detectDockerHost probes known socket paths for the current platform.
// Existence is checked rather than connectivity — Ping covers the
// latter — because a stat is cheap and needs no running daemon.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
		})

	case "darwin":
		// Docker Desktop symlinks /var/run/docker.sock, but newer
		// versions may only create the per-user socket.
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return detectUnixSocket([]string{
				"/var/run/docker.sock",
			})
		}
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
			homeDir + "/.docker/run/docker.sock",
		})

	case "windows":
		// os.Stat does not work on Windows named pipes, so probe with
		// a brief dial instead.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err == nil {
			conn.Close()
			return "npipe://" + pipePath, nil
		}
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the host URI for the first socket path that
// exists, in preference order.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("Docker socket not found at any of: %v — is Docker running?", paths)
}

// Ping verifies the daemon is reachable, waiting at most
// defaultPingTimeout for a response.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if _, err := c.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"Docker daemon is not responding — is Docker running?", err)
	}
	return nil
}

// Close releases the client's resources. Safe to call multiple times.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// Inner exposes the underlying SDK client for the image operations in
// this package.
func (c *Client) Inner() *client.Client {
	return c.inner
}
