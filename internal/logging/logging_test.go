package logging

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"INFO", log.InfoLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		logger := New(io.Discard, tt.level)
		assert.Equal(t, tt.want, logger.GetLevel(), tt.level)
	}
}

func TestNewWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info")
	logger.Info("hello", FieldFile, "x.txt")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "x.txt")
}

// SetDefault installs the logger Default hands out from then on.
func TestSetDefault(t *testing.T) {
	custom := New(io.Discard, "debug")
	SetDefault(custom)
	require.Same(t, custom, Default())
}
