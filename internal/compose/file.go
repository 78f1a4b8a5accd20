// file.go parses the compose YAML just deeply enough to answer two
// questions: does the configured service exist, and which Dockerfile
// does it build from. Everything else in the file belongs to docker
// compose and is deliberately left uninterpreted.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/privateerctl/internal/model"
)

// File is a minimal view of a compose YAML document.
type File struct {
	// Services maps service names to the fragments this tool reads.
	Services map[string]Service `yaml:"services"`
}

// Service is the per-service fragment: the image reference (if the
// service runs a prebuilt image) and the build section (if it builds).
type Service struct {
	Image string     `yaml:"image,omitempty"`
	Build *BuildSpec `yaml:"build,omitempty"`
}

// BuildSpec is the service build section. Compose allows both the short
// string form ("build: ./dir") and the mapping form with context and
// dockerfile keys, so it carries a custom unmarshaller.
type BuildSpec struct {
	Context    string `yaml:"context,omitempty"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// UnmarshalYAML accepts both forms of the build section. The short form
// sets only the context; the dockerfile name falls back to the compose
// default later.
func (b *BuildSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var context string
		if err := value.Decode(&context); err != nil {
			return err
		}
		b.Context = context
		return nil
	}

	// Alias type drops the custom unmarshaller to avoid recursion.
	type plain BuildSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*b = BuildSpec(p)
	return nil
}

// LoadFile reads and parses the compose YAML at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read compose file %s", path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse compose file %s", path), err)
	}
	return &f, nil
}

// ServiceNames returns the defined service names in sorted order.
func (f *File) ServiceNames() []string {
	names := make([]string, 0, len(f.Services))
	for name := range f.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasService reports whether the compose file defines the named service.
func (f *File) HasService(name string) bool {
	_, ok := f.Services[name]
	return ok
}

// DockerfileFor resolves the Dockerfile path for the named service,
// relative to baseDir (the directory containing the compose file).
// Services without a build section — prebuilt images — yield an empty
// path, as do unknown services.
func (f *File) DockerfileFor(name, baseDir string) string {
	svc, ok := f.Services[name]
	if !ok || svc.Build == nil {
		return ""
	}

	context := svc.Build.Context
	if context == "" {
		context = "."
	}
	dockerfile := svc.Build.Dockerfile
	if dockerfile == "" {
		dockerfile = "Dockerfile"
	}
	return filepath.Join(baseDir, context, dockerfile)
}
