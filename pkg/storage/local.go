package storage

import (
	"context"
	"io"
	"os"
	"sort"
)

// Local is the live-filesystem backend
type Local struct{}

// NewLocal creates a new local filesystem backend
func NewLocal() *Local {
	return &Local{}
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ReadDir lists a directory and closes the handle on every path
func (l *Local) ReadDir(ctx context.Context, path string) ([]string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Remove removes a single directory entry
func (l *Local) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}

// Link creates newname as a hard link to oldname
func (l *Local) Link(ctx context.Context, oldname, newname string) error {
	return os.Link(oldname, newname)
}

// Rename atomically replaces newpath with oldpath
func (l *Local) Rename(ctx context.Context, oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
