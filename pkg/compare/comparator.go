package compare

import (
	"context"
)

// Comparison holds the result of comparing two files
type Comparison struct {
	PathA         string
	PathB         string
	Equal         bool
	Reason        string
	BytesCompared int64
}

// Comparator defines the interface for file content comparison
type Comparator interface {
	// Compare compares the content of two regular files.
	// An error means the comparison could not be completed; the files are
	// then treated as not equal.
	Compare(ctx context.Context, pathA, pathB string) (*Comparison, error)

	// Name returns the name of the comparison method
	Name() string
}
