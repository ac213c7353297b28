package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/config"
	"github.com/nebstarmalala/securion-console/internal/logging"
)

// logResult holds the active logger's file handle between setup and
// cleanup.
var logResult *logging.Result //nolint:gochecknoglobals // Paired with the package-level logger.

// setupLogging configures logging based on config file, environment,
// and CLI flags. --debug forces console debug output regardless of the
// configured level or file.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logCfg.Level = "debug"
		logCfg.Format = "console"
		logCfg.File = ""
	}

	if envLevel := os.Getenv(config.EnvLogLevel); envLevel != "" && !debug {
		logCfg.Level = envLevel
	}

	logResult = logging.New(logCfg)
	logger = logging.ComponentLogger(logResult.Logger, "cli")
}

// cleanupLogging closes the log file handle opened by setupLogging.
func cleanupLogging() error {
	result := logResult
	logResult = nil
	return result.Close()
}
