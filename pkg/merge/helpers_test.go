package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdejongh/mergeln/pkg/compare"
	"github.com/sdejongh/mergeln/pkg/fsinfo"
	"github.com/sdejongh/mergeln/pkg/models"
	"github.com/sdejongh/mergeln/pkg/storage"
)

// faultBackend wraps the local backend and fails selected calls
type faultBackend struct {
	*storage.Local

	failLink    error
	failRename  error
	failReadDir map[string]error

	links   []string
	renames []string
	removes []string
}

func newFaultBackend() *faultBackend {
	return &faultBackend{Local: storage.NewLocal(), failReadDir: map[string]error{}}
}

func (b *faultBackend) ReadDir(ctx context.Context, path string) ([]string, error) {
	if err, ok := b.failReadDir[path]; ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return b.Local.ReadDir(ctx, path)
}

func (b *faultBackend) Link(ctx context.Context, oldname, newname string) error {
	b.links = append(b.links, newname)
	if b.failLink != nil {
		return &os.LinkError{Op: "link", Old: oldname, New: newname, Err: b.failLink}
	}
	return b.Local.Link(ctx, oldname, newname)
}

func (b *faultBackend) Rename(ctx context.Context, oldpath, newpath string) error {
	b.renames = append(b.renames, newpath)
	if b.failRename != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: b.failRename}
	}
	return b.Local.Rename(ctx, oldpath, newpath)
}

func (b *faultBackend) Remove(ctx context.Context, path string) error {
	b.removes = append(b.removes, path)
	return b.Local.Remove(ctx, path)
}

// recordingFormatter collects narration lines and errors
type recordingFormatter struct {
	lines      []string
	errors     []error
	mismatches int
	completed  int
}

func (f *recordingFormatter) Pair(result models.PairResult) error {
	if result.Failed() {
		return f.Error(result.Error)
	}
	f.lines = append(f.lines, fmt.Sprintf("%s and %s %s", result.PathA, result.PathB, result.Outcome))
	return nil
}

func (f *recordingFormatter) TypeMismatch(pathA, pathB string) error {
	f.mismatches++
	f.lines = append(f.lines, fmt.Sprintf("%s and %s different_types", pathA, pathB))
	return nil
}

func (f *recordingFormatter) Error(err error) error {
	f.errors = append(f.errors, err)
	return nil
}

func (f *recordingFormatter) Complete(report *models.MergeReport) error {
	f.completed++
	return nil
}

func (f *recordingFormatter) Name() string {
	return "recording"
}

// countFor returns how many lines and errors mention pathB
func (f *recordingFormatter) countFor(pathB string) int {
	n := 0
	for _, line := range f.lines {
		if strings.Contains(line, " and "+pathB+" ") {
			n++
		}
	}
	for _, err := range f.errors {
		if strings.Contains(err.Error(), pathB) {
			n++
		}
	}
	return n
}

func newOperation(pathA, pathB string) *models.MergeOperation {
	return &models.MergeOperation{
		ID:           "test-op",
		PathA:        pathA,
		PathB:        pathB,
		LinkStrategy: models.LinkReplace,
		GuardCycles:  true,
		BufferSize:   compare.MinBufferSize,
	}
}

func newTestMerger(backend storage.Backend, op *models.MergeOperation) (*Merger, *recordingFormatter) {
	formatter := &recordingFormatter{}
	comparator := compare.NewBinaryComparator(backend, op.BufferSize)
	return NewMerger(backend, comparator, formatter, nil, op), formatter
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func inode(t *testing.T, path string) uint64 {
	t.Helper()
	id, err := fsinfo.Stat(path)
	require.NoError(t, err)
	if id.Ino == 0 {
		t.Skip("inode numbers not available on this platform")
	}
	return id.Ino
}

func sameInode(t *testing.T, a, b string) bool {
	t.Helper()
	return inode(t, a) == inode(t, b)
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

var errInjected = errors.New("injected failure")
