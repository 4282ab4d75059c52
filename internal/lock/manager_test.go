package lock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	m := NewFlockManager()
	path := filepath.Join(t.TempDir(), "target.txt")

	h, err := m.Acquire(path, time.Second)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, path, h.Path)

	// The lock file lives next to the target.
	_, err = os.Stat(path + ".lock")
	assert.NoError(t, err)

	require.NoError(t, m.Release(h))
}

func TestAcquireRequiresPath(t *testing.T) {
	m := NewFlockManager()
	_, err := m.Acquire("", time.Second)
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestReleaseNilHandle(t *testing.T) {
	m := NewFlockManager()
	assert.NoError(t, m.Release(nil))
	assert.NoError(t, m.Release(&Handle{}))
}

func TestReacquireAfterRelease(t *testing.T) {
	m := NewFlockManager()
	path := filepath.Join(t.TempDir(), "cycle.txt")

	for i := 0; i < 3; i++ {
		h, err := m.Acquire(path, time.Second)
		require.NoError(t, err)
		require.NoError(t, m.Release(h))
	}
}
