// Package fsinfo classifies paths and reports file identity.
//
// The boolean helpers (Exists, IsFile, IsDir) never return errors: any stat
// failure degrades to false, so "does not exist", "permission denied" and
// "wrong type" look the same to the caller. Classify keeps the stat error for
// callers that need to tell them apart.
package fsinfo

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/multierr"
)

// Kind is the type of filesystem object a path resolves to
type Kind int

const (
	// KindNone means the path could not be stat'd
	KindNone Kind = iota
	// KindFile is a regular file
	KindFile
	// KindDir is a directory
	KindDir
	// KindOther is anything else (device, socket, fifo)
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindOther:
		return "other"
	default:
		return "none"
	}
}

// Identity describes a file as seen by stat(2), following symlinks
type Identity struct {
	Path  string
	Dev   uint64
	Ino   uint64
	Size  int64
	Nlink uint64
	Mode  fs.FileMode

	info fs.FileInfo
}

// IsRegular reports whether the identity is a regular file
func (id *Identity) IsRegular() bool {
	return id.Mode.IsRegular()
}

// IsDir reports whether the identity is a directory
func (id *Identity) IsDir() bool {
	return id.Mode.IsDir()
}

// Classify stats path and returns its kind.
// On failure the kind is KindNone and the stat error is returned.
func Classify(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return KindNone, err
	}
	return kindOf(info.Mode()), nil
}

// IsNotExist reports whether a Classify or Stat error means the path is missing
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Exists returns true if path can be stat'd
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile returns true if path is a regular file
func IsFile(path string) bool {
	kind, _ := Classify(path)
	return kind == KindFile
}

// IsDir returns true if path is a directory
func IsDir(path string) bool {
	kind, _ := Classify(path)
	return kind == KindDir
}

// Stat returns the identity of path
func Stat(path string) (*Identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	id := &Identity{
		Path: path,
		Size: info.Size(),
		Mode: info.Mode(),
		info: info,
	}
	if err := fillIdentity(id, info); err != nil {
		return nil, err
	}
	return id, nil
}

// StatPair stats both paths. If either fails, the errors are combined.
func StatPair(pathA, pathB string) (*Identity, *Identity, error) {
	a, errA := Stat(pathA)
	b, errB := Stat(pathB)
	if err := multierr.Combine(errA, errB); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// SameFile reports whether both identities refer to the same device and inode
func SameFile(a, b *Identity) bool {
	if a == nil || b == nil {
		return false
	}
	return os.SameFile(a.info, b.info)
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	default:
		return KindOther
	}
}
