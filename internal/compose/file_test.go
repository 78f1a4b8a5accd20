package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// writeComposeFile creates a compose YAML with the given content in a
// temp directory and returns its path.
func writeComposeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadFile_MappingBuild verifies parsing of the mapping form of the
// build section.
func TestLoadFile_MappingBuild(t *testing.T) {
	path := writeComposeFile(t, `
services:
  privateerr:
    build:
      context: ./svc
      dockerfile: Dockerfile.vpn
  cache:
    image: redis:7
`)

	f, err := LoadFile(path)

	require.NoError(t, err)
	assert.True(t, f.HasService("privateerr"))
	assert.True(t, f.HasService("cache"))
	assert.False(t, f.HasService("missing"))
	assert.Equal(t, []string{"cache", "privateerr"}, f.ServiceNames())
}

// TestLoadFile_ShortFormBuild verifies the string form of the build
// section sets only the context.
func TestLoadFile_ShortFormBuild(t *testing.T) {
	path := writeComposeFile(t, `
services:
  privateerr:
    build: ./svc
`)

	f, err := LoadFile(path)

	require.NoError(t, err)
	svc := f.Services["privateerr"]
	require.NotNil(t, svc.Build)
	assert.Equal(t, "./svc", svc.Build.Context)
	assert.Empty(t, svc.Build.Dockerfile)
}

// TestDockerfileFor verifies path resolution relative to the compose
// file's directory, with compose defaults for missing fields.
func TestDockerfileFor(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		service string
		want    string // relative to baseDir
	}{
		{
			name: "explicit context and dockerfile",
			yaml: `
services:
  privateerr:
    build:
      context: ./svc
      dockerfile: Dockerfile.vpn
`,
			service: "privateerr",
			want:    "svc/Dockerfile.vpn",
		},
		{
			name: "short form defaults dockerfile",
			yaml: `
services:
  privateerr:
    build: ./svc
`,
			service: "privateerr",
			want:    "svc/Dockerfile",
		},
		{
			name: "mapping form defaults context",
			yaml: `
services:
  privateerr:
    build:
      dockerfile: Dockerfile.vpn
`,
			service: "privateerr",
			want:    "Dockerfile.vpn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadFile(writeComposeFile(t, tt.yaml))
			require.NoError(t, err)

			got := f.DockerfileFor(tt.service, "base")
			assert.Equal(t, filepath.Join("base", tt.want), got)
		})
	}
}

// TestDockerfileFor_NoBuildSection verifies prebuilt-image services and
// unknown services yield an empty path.
func TestDockerfileFor_NoBuildSection(t *testing.T) {
	f, err := LoadFile(writeComposeFile(t, `
services:
  cache:
    image: redis:7
`))
	require.NoError(t, err)

	assert.Empty(t, f.DockerfileFor("cache", "."))
	assert.Empty(t, f.DockerfileFor("missing", "."))
}

// TestLoadFile_Missing verifies a missing compose file is a
// configuration error.
func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestLoadFile_Malformed verifies YAML syntax errors surface as
// configuration errors rather than panics or silence.
func TestLoadFile_Malformed(t *testing.T) {
	_, err := LoadFile(writeComposeFile(t, "services: ["))

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}
