// image.go removes local images matching a reference after teardown.
// The removal is best-effort end to end: teardown succeeded by the time
// this runs, and a leftover base image is a disk-space nuisance, not a
// failure.
package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
)

// RemoveImagesByReference removes every local image whose repository
// matches ref (any tag). An empty ref is a no-op: the Dockerfile had no
// FROM line to extract, so there is nothing to clean up.
//
// The first error encountered is returned together with the count of
// images removed so far; callers decide whether to surface or swallow
// it. Matching zero images is success, not an error.
func RemoveImagesByReference(ctx context.Context, cli *Client, ref string) (int, error) {
	if ref == "" {
		return 0, nil
	}

	// The reference filter is applied daemon-side and matches the bare
	// repository name against all of its tags.
	summaries, err := cli.Inner().ImageList(ctx, image.ListOptions{
		All:     false,
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list images matching %q: %w", ref, err)
	}

	removed := 0
	for _, s := range summaries {
		// PruneChildren drops now-unreferenced intermediate layers along
		// with the image, mirroring what a manual docker rmi would do.
		if _, err := cli.Inner().ImageRemove(ctx, s.ID, image.RemoveOptions{
			Force:         false,
			PruneChildren: true,
		}); err != nil {
			return removed, fmt.Errorf("failed to remove image %s: %w", describeImage(s), err)
		}
		removed++
	}
	return removed, nil
}

// describeImage renders an image summary for error messages, preferring
// repo tags over the bare digest ID.
func describeImage(s image.Summary) string {
	if len(s.RepoTags) > 0 {
		return strings.Join(s.RepoTags, ", ")
	}
	return s.ID
}
