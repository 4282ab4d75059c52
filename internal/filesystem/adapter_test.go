package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	fs := NewOSAdapter()
	path := filepath.Join(t.TempDir(), "f.txt")

	require.NoError(t, fs.WriteFileBytesAtomic(path, []byte("hello"), 0644))
	data, err := fs.ReadFileBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestWriteAtomicOverwrites(t *testing.T) {
	fs := NewOSAdapter()
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, fs.WriteFileBytesAtomic(path, []byte("first"), 0644))
	require.NoError(t, fs.WriteFileBytesAtomic(path, []byte("second"), 0644))

	data, err := fs.ReadFileBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

// The temp file used for the atomic write must not survive.
func TestWriteAtomicLeavesNoTempFiles(t *testing.T) {
	fs := NewOSAdapter()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, fs.WriteFileBytesAtomic(path, []byte("x"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "f.txt", entries[0].Name())
}

func TestWriteAtomicSetsPermissions(t *testing.T) {
	fs := NewOSAdapter()
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, fs.WriteFileBytesAtomic(path, []byte("x"), 0600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileExists(t *testing.T) {
	fs := NewOSAdapter()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	exists, err := fs.FileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	exists, err = fs.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetFileStats(t *testing.T) {
	fs := NewOSAdapter()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	stats, err := fs.GetFileStats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Size)
	assert.False(t, stats.IsDir)

	stats, err = fs.GetFileStats(dir)
	require.NoError(t, err)
	assert.True(t, stats.IsDir)

	_, err = fs.GetFileStats(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestListDir(t *testing.T) {
	fs := NewOSAdapter()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))

	entries, err := fs.ListDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, entry := range entries {
		switch entry.Name {
		case "visible.txt":
			assert.False(t, entry.IsDir)
			assert.False(t, entry.IsHidden)
			assert.Equal(t, int64(1), entry.Size)
		case ".hidden":
			assert.True(t, entry.IsHidden)
		case "sub":
			assert.True(t, entry.IsDir)
		default:
			t.Fatalf("unexpected entry %q", entry.Name)
		}
	}
}

func TestListDirMissing(t *testing.T) {
	fs := NewOSAdapter()
	_, err := fs.ListDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "read dir"))
}
