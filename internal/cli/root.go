package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "prom"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "prom"}

// NewRootCommand creates the root command for the buildlens CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "buildlens",
		Short: "buildlens - Bazel profile analyzer",
		Long: `Analyze Bazel JSON trace profiles.

buildlens parses a profile written with --profile (plain or gzipped) and
derives facts about the build: its phases, critical path, garbage collection
and action statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|prom)")

	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewFactsCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))

	return cmd
}

// configureLogging installs the default slog logger. Logs always go to w so
// they never mix with JSON or Prometheus output.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// newFormatter builds the formatter for a command invocation.
func newFormatter(cmd *cobra.Command, opts *RootOptions, format string) *OutputFormatter {
	return &OutputFormatter{
		Format:    format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
