// Package filesystem wraps the raw byte-level file operations behind an
// interface so the orchestrator can be tested against a fake. All content
// interpretation (encoding, line splitting) happens above this layer.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStats holds basic statistics about a file.
type FileStats struct {
	Size    int64
	IsDir   bool
	ModTime time.Time
	Mode    os.FileMode
}

// DirEntryInfo holds information about a directory entry.
type DirEntryInfo struct {
	Name     string
	IsDir    bool
	IsHidden bool
	Mode     os.FileMode
	ModTime  time.Time
	Size     int64
}

// Adapter defines the byte-level file operations the orchestrator needs.
type Adapter interface {
	ReadFileBytes(filePath string) ([]byte, error)
	WriteFileBytesAtomic(filePath string, content []byte, perm os.FileMode) error
	FileExists(filePath string) (bool, error)
	GetFileStats(filePath string) (*FileStats, error)
	ListDir(path string) ([]DirEntryInfo, error)
}

// OSAdapter is the standard implementation of Adapter using the os package.
type OSAdapter struct{}

// NewOSAdapter creates a new OSAdapter.
func NewOSAdapter() *OSAdapter {
	return &OSAdapter{}
}

var _ Adapter = (*OSAdapter)(nil)

// ReadFileBytes reads the entire file into a byte slice.
func (fs *OSAdapter) ReadFileBytes(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return content, nil
}

// WriteFileBytesAtomic writes content to a file atomically: a temp file in
// the same directory, then rename over the target, then chmod. The rename
// is the commit point; a crash before it leaves the target untouched. A
// failure after the rename (chmod) leaves correct content with possibly
// stale permissions, which is reported but not rolled back.
func (fs *OSAdapter) WriteFileBytesAtomic(filePath string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp.Name(), filePath, err)
	}
	if err := os.Chmod(filePath, perm); err != nil {
		return fmt.Errorf("content written to %s, but chmod %o failed: %w", filePath, perm, err)
	}
	return nil
}

// FileExists checks whether a file exists.
func (fs *OSAdapter) FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", filePath, err)
}

// GetFileStats retrieves statistics for a file.
func (fs *OSAdapter) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filePath, err)
	}
	return &FileStats{
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Mode:    info.Mode().Perm(),
	}, nil
}

// ListDir lists the contents of a directory.
func (fs *OSAdapter) ListDir(path string) ([]DirEntryInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	var out []DirEntryInfo
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// The entry can vanish between ReadDir and Info. A partial
			// listing is misleading, so fail the whole call.
			return nil, fmt.Errorf("entry %s in %s: %w", entry.Name(), path, err)
		}
		out = append(out, DirEntryInfo{
			Name:     info.Name(),
			IsDir:    info.IsDir(),
			IsHidden: strings.HasPrefix(info.Name(), "."),
			Mode:     info.Mode().Perm(),
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
	}
	return out, nil
}
