// Package sandbox confines file operations to an explicit ordered set of
// accessible root directories. The roots are a configuration value handed
// to the constructor, never process-global state, so independent sandboxes
// can coexist in one process.
package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDenied is returned when a requested path escapes every configured root.
var ErrDenied = errors.New("path is outside the accessible roots")

// Sandbox resolves requested paths against its roots.
type Sandbox struct {
	roots []string // absolute, symlink-resolved, in configuration order
}

// New creates a sandbox over the given root directories. Each root must
// exist and be a directory; roots are resolved through symlinks once, here.
func New(roots []string) (*Sandbox, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one root directory is required")
	}
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", root, err)
		}
		real, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, fmt.Errorf("eval symlinks for root %q: %w", root, err)
		}
		info, err := os.Stat(real)
		if err != nil {
			return nil, fmt.Errorf("stat root %q: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %q is not a directory", root)
		}
		resolved = append(resolved, real)
	}
	return &Sandbox{roots: resolved}, nil
}

// Roots returns the resolved roots in configuration order.
func (s *Sandbox) Roots() []string {
	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// Resolve maps a requested path to an absolute path inside the sandbox.
//
// A relative path is tried against each root in order: the first root where
// it already exists wins; if it exists nowhere, it resolves against the
// first root (the create target). An absolute path must land inside one of
// the roots. Any escape, before or after symlink resolution, yields
// ErrDenied.
func (s *Sandbox) Resolve(requested string) (string, error) {
	if requested == "" {
		return "", fmt.Errorf("%w: empty path", ErrDenied)
	}

	if filepath.IsAbs(requested) {
		return s.admit(filepath.Clean(requested))
	}

	cleaned := filepath.Clean(requested)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrDenied, requested)
	}

	for _, root := range s.roots {
		candidate := filepath.Join(root, cleaned)
		if _, err := os.Stat(candidate); err == nil {
			return s.admit(candidate)
		}
	}
	return s.admit(filepath.Join(s.roots[0], cleaned))
}

// admit verifies that the candidate, after symlink resolution, stays inside
// one of the roots. A candidate that does not exist yet is checked through
// its nearest existing ancestor.
func (s *Sandbox) admit(candidate string) (string, error) {
	real, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("eval symlinks for %q: %w", candidate, err)
		}
		parent, err := s.admitParent(filepath.Dir(candidate))
		if err != nil {
			return "", err
		}
		real = filepath.Join(parent, filepath.Base(candidate))
	}
	for _, root := range s.roots {
		if within(root, real) {
			return real, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrDenied, candidate)
}

func (s *Sandbox) admitParent(dir string) (string, error) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: parent directory of %q does not exist", os.ErrNotExist, dir)
		}
		return "", fmt.Errorf("eval symlinks for %q: %w", dir, err)
	}
	return real, nil
}

func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(os.PathSeparator))
}
