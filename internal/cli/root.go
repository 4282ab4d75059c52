// Package cli provides the Cobra command structure for line-edit-server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"line-edit-server/internal/config"
	"line-edit-server/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root command. Running it starts the server on
// the selected transport.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var configPath string
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "line-edit-server",
		Short: "A line-indexed file editing server with encoding preservation",
		Long: `line-edit-server exposes file-manipulation tools to an LLM-driven
dispatcher over JSON-RPC (stdio or HTTP). Edits are batches of
line-numbered instructions applied atomically; the on-disk text encoding
(BOM, UTF width, endianness) is detected and preserved across the
read-modify-write cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := cfg.LoadFile(configPath); err != nil {
					return err
				}
				// Flags win over the file.
				if err := applyFlagOverrides(cmd, cfg); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			// Install the configured logger as the package default so
			// collaborators constructed with a nil logger pick it up.
			logger := logging.New(os.Stderr, cfg.LogLevel)
			logging.SetDefault(logger)
			return runServer(cfg, logger)
		},
	}

	flags := rootCmd.Flags()
	flags.StringArrayVar(&cfg.Roots, "root", nil, "accessible root directory (repeatable, required)")
	flags.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport protocol (stdio or http)")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "port for the http transport")
	flags.IntVar(&cfg.MaxFileSizeMB, "max-file-size", cfg.MaxFileSizeMB, "maximum file size in MB")
	flags.IntVar(&cfg.LockTimeoutSec, "lock-timeout", cfg.LockTimeoutSec, "lock acquisition timeout in seconds")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.DefaultEncoding, "default-encoding", cfg.DefaultEncoding, "write encoding when a request names none")
	flags.StringVar(&configPath, "config", "", "path to a YAML config file (flags override it)")

	rootCmd.AddCommand(newVersionCommand(info))
	return rootCmd
}

// applyFlagOverrides re-applies explicitly set flags on top of file values.
// Cobra binds flags into cfg before RunE, so LoadFile clobbers them; this
// puts the changed ones back.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("root") {
		roots, err := flags.GetStringArray("root")
		if err != nil {
			return err
		}
		cfg.Roots = roots
	}
	if flags.Changed("transport") {
		cfg.Transport, _ = flags.GetString("transport")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSizeMB, _ = flags.GetInt("max-file-size")
	}
	if flags.Changed("lock-timeout") {
		cfg.LockTimeoutSec, _ = flags.GetInt("lock-timeout")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("default-encoding") {
		cfg.DefaultEncoding, _ = flags.GetString("default-encoding")
	}
	return nil
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "line-edit-server %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}
