// Package cli implements the persondir CLI commands.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/persondir/internal/config"
	"github.com/rcliao/persondir/internal/logger"
)

// ErrFailed is returned when a command ended with an error status or invalid
// input. The reason has already been printed.
var ErrFailed = errors.New("command failed")

var (
	urlFlag     string
	sessionFlag string
	formatFlag  string
	logLevel    string
	timeoutFlag time.Duration

	cfg *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "persondir",
	Short: "Manage a remote person directory",
	Long: "A CLI for a person directory served at api/persons. Lists, searches, adds, edits and deletes persons.\n" +
		"The list, status and open forms are kept between invocations in a local session database.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&urlFlag, "url", "u", "", "Directory base URL (default: $PERSONDIR_URL or "+config.DefaultBaseURL+")")
	RootCmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "", "Session database path (default: $PERSONDIR_SESSION or ~/.persondir/session.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or warn)")
	RootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (default: $PERSONDIR_TIMEOUT or 30s)")
}

func setup(cmd *cobra.Command, args []string) error {
	// Quiet until the configured level is known.
	logger.InitWriter(cmd.ErrOrStderr(), config.DefaultLogLevel)

	c := config.Load()
	if urlFlag != "" {
		c.BaseURL = urlFlag
	}
	if sessionFlag != "" {
		c.SessionPath = sessionFlag
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if timeoutFlag != 0 {
		c.Timeout = timeoutFlag
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if formatFlag != "text" && formatFlag != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", formatFlag)
	}

	logger.InitWriter(cmd.ErrOrStderr(), c.LogLevel)
	cfg = c
	return nil
}
