package storage

import (
	"context"
	"io"
)

// Backend defines the filesystem operations used by the merger.
// Every call that acquires a handle or mutates the tree goes through it.
type Backend interface {
	// Open opens a file for reading
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadDir returns the entry names of a directory, sorted.
	// The directory handle is released before ReadDir returns.
	ReadDir(ctx context.Context, path string) ([]string, error)

	// Remove removes a single directory entry
	Remove(ctx context.Context, path string) error

	// Link creates newname as a hard link to oldname
	Link(ctx context.Context, oldname, newname string) error

	// Rename atomically replaces newpath with oldpath
	Rename(ctx context.Context, oldpath, newpath string) error

	// Close releases any resources held by the backend
	Close() error
}
