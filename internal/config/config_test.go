package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := Default()
	cfg.Roots = []string{t.TempDir()}
	return cfg
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "stdio", cfg.Transport)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10, cfg.MaxFileSizeMB)
	assert.Equal(t, 100000, cfg.MaxLineCount)
	assert.Equal(t, 30, cfg.LockTimeoutSec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "utf8", cfg.DefaultEncoding)
	assert.Empty(t, cfg.Roots)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, validConfig(t).Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no roots", func(c *Config) { c.Roots = nil }},
		{"missing root", func(c *Config) { c.Roots = []string{"/definitely/not/here"} }},
		{"unknown transport", func(c *Config) { c.Transport = "grpc" }},
		{"privileged port", func(c *Config) { c.Transport = "http"; c.Port = 80 }},
		{"port too high", func(c *Config) { c.Transport = "http"; c.Port = 70000 }},
		{"zero file size", func(c *Config) { c.MaxFileSizeMB = 0 }},
		{"file size too big", func(c *Config) { c.MaxFileSizeMB = 500 }},
		{"zero line count", func(c *Config) { c.MaxLineCount = 0 }},
		{"zero lock timeout", func(c *Config) { c.LockTimeoutSec = 0 }},
		{"lock timeout too long", func(c *Config) { c.LockTimeoutSec = 1000 }},
		{"bad encoding", func(c *Config) { c.DefaultEncoding = "latin1" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRejectsFileAsRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	cfg := Default()
	cfg.Roots = []string{file}
	assert.Error(t, cfg.Validate())
}

// Port is only checked for the http transport.
func TestValidatePortIgnoredForStdio(t *testing.T) {
	cfg := validConfig(t)
	cfg.Transport = "stdio"
	cfg.Port = 80
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"transport: http\nport: 9090\nmax_file_size_mb: 25\nlog_level: debug\n"), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "http", cfg.Transport)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 25, cfg.MaxFileSizeMB)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 30, cfg.LockTimeoutSec)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transprot: http\n"), 0644))
	assert.Error(t, Default().LoadFile(path))
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, "stdio", cfg.Transport)
}

func TestLoadFileMissing(t *testing.T) {
	assert.Error(t, Default().LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}
