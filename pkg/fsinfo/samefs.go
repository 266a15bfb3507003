package fsinfo

import "fmt"

// SameFilesystem checks if two paths are on the same filesystem.
// Hard links cannot span filesystems.
// Returns an error if either path cannot be stat'd.
func SameFilesystem(path1, path2 string) (bool, error) {
	id1, err := Stat(path1)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path1, err)
	}

	id2, err := Stat(path2)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path2, err)
	}

	return id1.Dev == id2.Dev, nil
}
