package merge

import (
	"errors"
	"fmt"
	"os"

	"github.com/sdejongh/mergeln/pkg/fsinfo"
)

// LinkError is returned when consolidating two identical files fails
type LinkError struct {
	// Op is "remove", "link" or "rename"
	Op   string
	Path string
	Err  error
	// Removed is set when the second path was removed but not replaced
	Removed bool
}

func (e *LinkError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, rootCause(e.Err))
	if e.Removed {
		msg += " (entry was removed and not replaced)"
	}
	return msg
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// TypeMismatchError is returned when the two top-level paths are not both
// regular files or both directories
type TypeMismatchError struct {
	PathA string
	PathB string
	KindA fsinfo.Kind
	KindB fsinfo.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s (%s) and %s (%s) are different types", e.PathA, e.KindA, e.PathB, e.KindB)
}

// rootCause strips the os wrapper so the path is not printed twice
func rootCause(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
