// Package config resolves the privateerctl configuration.
//
// Resolution happens once at startup and produces an immutable snapshot
// that is passed explicitly to every command handler. Precedence, lowest
// to highest:
//
//	built-in defaults → .privateerctl.json project file → environment
//
// The project file may contain comments and trailing commas (JSONC),
// matching the devcontainer.json convention, so it is normalized with
// github.com/tidwall/jsonc before parsing with encoding/json.
//
// Option values arrive as single shell-style strings (the environment
// cannot carry argv lists), so they are split with go-shellquote rather
// than a naive strings.Fields, preserving quoted arguments like
// --build-arg 'FOO=a b'.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/kballard/go-shellquote"
	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// Environment variable names recognized by Load. Exported so tests and
// help text stay in sync with the resolution logic.
const (
	EnvServiceName  = "COMPOSE_SERVICE_NAME"
	EnvDownTimeout  = "COMPOSE_DOWN_TIMEOUT"
	EnvDownOptions  = "COMPOSE_DOWN_OPTIONS"
	EnvBuildOptions = "COMPOSE_BUILD_OPTIONS"
	EnvUpOptions    = "COMPOSE_UP_OPTIONS"
	EnvLogsOptions  = "COMPOSE_LOGS_OPTIONS"
)

// Credential variable names required by build and up. These are fixed:
// the wrapped stack reads them directly, so they are not configurable.
const (
	EnvPIAUser = "PIA_USER"
	EnvPIAPass = "PIA_PASS"
)

// DefaultProjectFile is the optional JSONC project file probed by Load
// in the current working directory.
const DefaultProjectFile = ".privateerctl.json"

// Built-in defaults. Down options are derived from the timeout, so they
// are constructed in Load rather than listed here.
var (
	defaultServiceName  = "privateerr"
	defaultComposeFile  = "docker-compose.yml"
	defaultRequired     = []string{"docker"}
	defaultDownTimeout  = 30
	defaultBuildOptions = []string{"--pull", "--no-cache"}
	defaultUpOptions    = []string{"--build", "--force-recreate", "--pull", "always"}
	defaultLogsOptions  = []string{"-f"}
)

// Config is the resolved configuration snapshot. All fields are plain
// values; nothing is re-read from the environment after Load returns.
type Config struct {
	// ServiceName is the compose service the build command targets.
	ServiceName string

	// ComposeFile is the path to the compose YAML, relative to the
	// working directory the tool is invoked from.
	ComposeFile string

	// Dockerfile optionally pins the Dockerfile read by the teardown
	// image cleanup. When empty, the path is resolved from the compose
	// service's build section at teardown time.
	Dockerfile string

	// RequiredTools lists the executables that must resolve on PATH
	// before any compose invocation.
	RequiredTools []string

	// DownTimeout is the grace period in seconds before containers are
	// force-stopped during teardown. Only consulted when DownOptions
	// come from the default; an explicit option string replaces it.
	DownTimeout int

	// BuildOptions, UpOptions, DownOptions, and LogsOptions are the
	// already-split argument lists appended to the respective compose
	// subcommand.
	BuildOptions []string
	UpOptions    []string
	DownOptions  []string
	LogsOptions  []string
}

// projectFile mirrors the JSONC project file structure. Only the fields
// that make sense to pin per-project are exposed; per-invocation knobs
// stay environment-driven.
type projectFile struct {
	ServiceName   string   `json:"serviceName,omitempty"`
	ComposeFile   string   `json:"composeFile,omitempty"`
	Dockerfile    string   `json:"dockerfile,omitempty"`
	RequiredTools []string `json:"requiredTools,omitempty"`
	DownTimeout   *int     `json:"downTimeout,omitempty"`
	Options       struct {
		Build string `json:"build,omitempty"`
		Up    string `json:"up,omitempty"`
		Down  string `json:"down,omitempty"`
		Logs  string `json:"logs,omitempty"`
	} `json:"options,omitempty"`
}

// Load resolves the configuration from defaults, the optional project
// file in the current directory, and the environment.
func Load() (*Config, error) {
	return load(DefaultProjectFile, os.Getenv)
}

// load is the testable core of Load: the project file path and the
// environment lookup are injectable.
func load(projectPath string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		ServiceName:   defaultServiceName,
		ComposeFile:   defaultComposeFile,
		RequiredTools: append([]string(nil), defaultRequired...),
		DownTimeout:   defaultDownTimeout,
		BuildOptions:  append([]string(nil), defaultBuildOptions...),
		UpOptions:     append([]string(nil), defaultUpOptions...),
		LogsOptions:   append([]string(nil), defaultLogsOptions...),
	}

	// Layer 2: optional project file. A missing file is not an error;
	// an unreadable or malformed one is, because silently ignoring it
	// would run compose with the wrong service or options.
	pf, err := loadProjectFile(projectPath)
	if err != nil {
		return nil, err
	}
	if pf != nil {
		if err := applyProjectFile(cfg, pf); err != nil {
			return nil, err
		}
	}

	// Layer 3: environment overrides.
	if v := getenv(EnvServiceName); v != "" {
		cfg.ServiceName = v
	}
	if v := getenv(EnvDownTimeout); v != "" {
		t, convErr := strconv.Atoi(v)
		if convErr != nil || t < 0 {
			return nil, model.NewCLIError(model.ExitConfigError,
				fmt.Sprintf("%s must be a non-negative integer, got %q", EnvDownTimeout, v))
		}
		cfg.DownTimeout = t
	}

	for _, o := range []struct {
		env  string
		dest *[]string
	}{
		{EnvBuildOptions, &cfg.BuildOptions},
		{EnvUpOptions, &cfg.UpOptions},
		{EnvLogsOptions, &cfg.LogsOptions},
	} {
		if v := getenv(o.env); v != "" {
			split, splitErr := splitOptions(o.env, v)
			if splitErr != nil {
				return nil, splitErr
			}
			*o.dest = split
		}
	}

	// Down options default to the timeout plus full image/volume removal.
	// An explicit COMPOSE_DOWN_OPTIONS string replaces the whole list,
	// timeout included.
	if v := getenv(EnvDownOptions); v != "" {
		split, splitErr := splitOptions(EnvDownOptions, v)
		if splitErr != nil {
			return nil, splitErr
		}
		cfg.DownOptions = split
	} else if len(cfg.DownOptions) == 0 {
		cfg.DownOptions = []string{"-t", strconv.Itoa(cfg.DownTimeout), "--rmi", "all", "-v"}
	}

	return cfg, nil
}

// loadProjectFile reads and parses the JSONC project file.
// Returns (nil, nil) when the file does not exist.
func loadProjectFile(path string) (*projectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read project file %s", path), err)
	}

	// jsonc.ToJSON strips comments and trailing commas, producing bytes
	// the standard library parser accepts.
	var pf projectFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &pf); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse project file %s", path), err)
	}
	return &pf, nil
}

// applyProjectFile layers non-empty project file values over the defaults
// already present in cfg.
func applyProjectFile(cfg *Config, pf *projectFile) error {
	if pf.ServiceName != "" {
		cfg.ServiceName = pf.ServiceName
	}
	if pf.ComposeFile != "" {
		cfg.ComposeFile = pf.ComposeFile
	}
	if pf.Dockerfile != "" {
		cfg.Dockerfile = pf.Dockerfile
	}
	if len(pf.RequiredTools) > 0 {
		cfg.RequiredTools = append([]string(nil), pf.RequiredTools...)
	}
	if pf.DownTimeout != nil {
		if *pf.DownTimeout < 0 {
			return model.NewCLIError(model.ExitConfigError,
				fmt.Sprintf("downTimeout must be non-negative, got %d", *pf.DownTimeout))
		}
		cfg.DownTimeout = *pf.DownTimeout
	}

	for _, o := range []struct {
		name string
		raw  string
		dest *[]string
	}{
		{"options.build", pf.Options.Build, &cfg.BuildOptions},
		{"options.up", pf.Options.Up, &cfg.UpOptions},
		{"options.down", pf.Options.Down, &cfg.DownOptions},
		{"options.logs", pf.Options.Logs, &cfg.LogsOptions},
	} {
		if o.raw != "" {
			split, err := splitOptions(o.name, o.raw)
			if err != nil {
				return err
			}
			*o.dest = split
		}
	}
	return nil
}

// splitOptions turns a shell-style option string into an argument list.
// Quoting and escaping follow /bin/sh word splitting rules.
func splitOptions(source, raw string) ([]string, error) {
	split, err := shellquote.Split(raw)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid option string in %s", source), err)
	}
	return split, nil
}
