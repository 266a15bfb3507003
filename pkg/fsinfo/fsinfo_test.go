package fsinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0644))

	t.Run("RegularFile", func(t *testing.T) {
		kind, err := Classify(file)
		require.NoError(t, err)
		assert.Equal(t, KindFile, kind)
		assert.True(t, IsFile(file))
		assert.False(t, IsDir(file))
		assert.True(t, Exists(file))
	})

	t.Run("Directory", func(t *testing.T) {
		kind, err := Classify(dir)
		require.NoError(t, err)
		assert.Equal(t, KindDir, kind)
		assert.True(t, IsDir(dir))
		assert.False(t, IsFile(dir))
	})

	t.Run("Missing", func(t *testing.T) {
		missing := filepath.Join(dir, "missing")
		kind, err := Classify(missing)
		require.Error(t, err)
		assert.True(t, IsNotExist(err))
		assert.Equal(t, KindNone, kind)
		assert.False(t, Exists(missing))
		assert.False(t, IsFile(missing))
		assert.False(t, IsDir(missing))
	})

	t.Run("SymlinkToFileIsFile", func(t *testing.T) {
		link := filepath.Join(dir, "link")
		if err := os.Symlink(file, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		assert.True(t, IsFile(link))
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "directory", KindDir.String())
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "none", KindNone.String())
}

func TestStatPair(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("data"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("other data"), 0644))

	idA, idB, err := StatPair(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(4), idA.Size)
	assert.Equal(t, int64(10), idB.Size)
	assert.True(t, idA.IsRegular())
	assert.False(t, SameFile(idA, idB))

	_, _, err = StatPair(a, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestSameFile_HardLink(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original")
	linked := filepath.Join(dir, "linked")
	require.NoError(t, os.WriteFile(original, []byte("data"), 0644))
	require.NoError(t, os.Link(original, linked))

	idA, idB, err := StatPair(original, linked)
	require.NoError(t, err)
	assert.True(t, SameFile(idA, idB))
	assert.False(t, SameFile(idA, nil))
}

func TestSameFilesystem(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	require.NoError(t, os.Mkdir(a, 0755))

	same, err := SameFilesystem(dir, a)
	require.NoError(t, err)
	assert.True(t, same)

	_, err = SameFilesystem(dir, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
