package main

import (
	"os"

	"line-edit-server/internal/cli"
	"line-edit-server/internal/logging"
)

// Build-time variables, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("server failed", logging.FieldError, err)
		return 1
	}
	return 0
}
