package models

import (
	"time"
)

// LinkStrategy defines how a duplicate is replaced by a hard link
type LinkStrategy string

const (
	// LinkReplace removes the second path, then links the first path in its
	// place. If the link step fails the second path is left missing.
	LinkReplace LinkStrategy = "replace"
	// LinkAtomic links to a hidden temporary name next to the second path and
	// renames it into place. A failed link leaves the second path untouched.
	LinkAtomic LinkStrategy = "atomic"
)

// Valid reports whether s is a known strategy
func (s LinkStrategy) Valid() bool {
	switch s {
	case LinkReplace, LinkAtomic:
		return true
	default:
		return false
	}
}

// MergeOperation represents a merge run configuration
type MergeOperation struct {
	ID              string
	PathA           string
	PathB           string
	LinkStrategy    LinkStrategy
	GuardCycles     bool
	ExcludePatterns []string
	BufferSize      int
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *MergeOperation) Validate() error {
	if op.PathA == "" {
		return &ValidationError{Field: "PathA", Message: "first path is required"}
	}
	if op.PathB == "" {
		return &ValidationError{Field: "PathB", Message: "second path is required"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if !op.LinkStrategy.Valid() {
		return &ValidationError{Field: "LinkStrategy", Message: "must be 'replace' or 'atomic'"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
