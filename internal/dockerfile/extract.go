// Package dockerfile extracts the base image reference from a Dockerfile.
//
// Teardown removes the local copies of the image the stack was built from,
// so the compose-managed stack pulls a fresh base on the next build. The
// only piece of the Dockerfile this tool cares about is the first FROM
// line; everything else is the build's business.
package dockerfile

import (
	"bufio"
	"os"
	"strings"
)

// BaseImage returns the base image reference declared by the first FROM
// instruction in the Dockerfile at path, with any tag or digest qualifier
// stripped (everything from the first ':' onward is removed, so
// "alpine:3.20" yields "alpine").
//
// A Dockerfile with no FROM line yields an empty string and no error:
// callers treat an empty reference as "nothing to clean up". Stage names
// ("FROM alpine AS build") and any tokens past the image reference are
// ignored.
func BaseImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// Only the canonical uppercase marker counts, matching the
		// original line-oriented extraction this replaces.
		if len(fields) < 2 || fields[0] != "FROM" {
			continue
		}
		ref := fields[1]
		if i := strings.IndexByte(ref, ':'); i >= 0 {
			ref = ref[:i]
		}
		return ref, nil
	}
	return "", scanner.Err()
}
