package merge

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sdejongh/mergeln/pkg/storage"
)

// tempPrefix starts with a dot so an interrupted run never leaves an entry
// that a later walk would visit
const tempPrefix = ".mergeln-"

// linkReplace removes pathB and links pathA in its place.
// If the link fails after the removal succeeded, pathB is left missing.
func linkReplace(ctx context.Context, backend storage.Backend, pathA, pathB string) error {
	if err := backend.Remove(ctx, pathB); err != nil {
		return &LinkError{Op: "remove", Path: pathB, Err: err}
	}
	if err := backend.Link(ctx, pathA, pathB); err != nil {
		return &LinkError{Op: "link", Path: pathB, Err: err, Removed: true}
	}
	return nil
}

// linkAtomic links pathA to a temporary name beside pathB, then renames it
// over pathB. pathB is never missing: on any failure it keeps its old inode.
func linkAtomic(ctx context.Context, backend storage.Backend, pathA, pathB string) error {
	tmp := filepath.Join(filepath.Dir(pathB), tempPrefix+uuid.NewString())

	if err := backend.Link(ctx, pathA, tmp); err != nil {
		return &LinkError{Op: "link", Path: pathB, Err: err}
	}
	if err := backend.Rename(ctx, tmp, pathB); err != nil {
		backend.Remove(ctx, tmp)
		return &LinkError{Op: "rename", Path: pathB, Err: err}
	}
	return nil
}
