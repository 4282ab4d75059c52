// Package config holds the server configuration: accessible roots,
// transport selection and operational limits. Values come from an optional
// YAML file overridden by command-line flags.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"line-edit-server/internal/textenc"
)

// Defaults for values left unset by file and flags.
const (
	DefaultTransport     = "stdio"
	DefaultPort          = 8080
	DefaultMaxFileSizeMB = 10
	DefaultMaxLineCount  = 100000
	DefaultLockTimeout   = 30 // seconds
	DefaultLogLevel      = "info"
	DefaultEncoding      = "utf8"
)

// Config holds all configurable values for the server.
type Config struct {
	// Roots is the ordered set of directories file paths may resolve
	// into. At least one is required.
	Roots []string `yaml:"roots"`
	// Transport is "stdio" or "http".
	Transport string `yaml:"transport"`
	// Port is the listen port for the HTTP transport.
	Port int `yaml:"port"`
	// MaxFileSizeMB bounds the size of files the server will touch.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
	// MaxLineCount bounds the number of lines a file may grow to.
	MaxLineCount int `yaml:"max_line_count"`
	// LockTimeoutSec bounds how long a request waits for the per-path lock.
	LockTimeoutSec int `yaml:"lock_timeout_sec"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// DefaultEncoding is the write encoding used when a request names none.
	DefaultEncoding string `yaml:"default_encoding"`
}

// Default returns a Config populated with defaults and no roots.
func Default() *Config {
	return &Config{
		Transport:       DefaultTransport,
		Port:            DefaultPort,
		MaxFileSizeMB:   DefaultMaxFileSizeMB,
		MaxLineCount:    DefaultMaxLineCount,
		LockTimeoutSec:  DefaultLockTimeout,
		LogLevel:        DefaultLogLevel,
		DefaultEncoding: DefaultEncoding,
	}
}

// LoadFile merges the YAML file at path into c. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return fmt.Errorf("at least one root directory is required")
	}
	for _, root := range c.Roots {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("root directory does not exist: %s", root)
			}
			return fmt.Errorf("access root directory %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root is not a directory: %s", root)
		}
	}

	if c.Transport != "http" && c.Transport != "stdio" {
		return fmt.Errorf("transport must be 'http' or 'stdio', got %q", c.Transport)
	}
	if c.Transport == "http" && (c.Port < 1024 || c.Port > 65535) {
		return fmt.Errorf("port must be between 1024 and 65535, got %d", c.Port)
	}
	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("max file size must be between 1 and 100 MB, got %d", c.MaxFileSizeMB)
	}
	if c.MaxLineCount < 1 {
		return fmt.Errorf("max line count must be positive, got %d", c.MaxLineCount)
	}
	if c.LockTimeoutSec < 1 || c.LockTimeoutSec > 300 {
		return fmt.Errorf("lock timeout must be between 1 and 300 seconds, got %d", c.LockTimeoutSec)
	}
	if _, err := textenc.Parse(c.DefaultEncoding); err != nil {
		return fmt.Errorf("default encoding: %w", err)
	}
	return nil
}
