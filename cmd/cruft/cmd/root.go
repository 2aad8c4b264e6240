package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/christokur/cruft/internal/config"
	"github.com/christokur/cruft/internal/logging"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	logLevel string
)

// env is read once per invocation in PersistentPreRunE.
var env config.Env

var rootCmd = &cobra.Command{
	Use:   "cruft",
	Short: "Create projects from cookiecutter templates and keep them updatable",
	Long: `cruft generates a project from a git-hosted cookiecutter template and
records the template, the exact commit and the rendering context in a
.cruft.json file, so the project can later be checked and updated when the
template changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if env, err = config.LoadEnv(); err != nil {
			return err
		}
		level := env.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger := logging.NewLogger(cmd.ErrOrStderr(), logging.ParseLevel(level))
		cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
		logger.Debug("logger initialized", "level", level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cruft %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		ctx := context.Background()
		if c != nil && c.Context() != nil {
			ctx = c.Context()
		}
		LoggerFromContext(ctx).Error("command failed", "error", err)
		return err
	}
	return nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
