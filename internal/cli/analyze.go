package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/buildlens/internal/config"
	"github.com/roach88/buildlens/internal/loader"
	"github.com/roach88/buildlens/internal/providers"
	"github.com/roach88/buildlens/internal/report"
	"github.com/roach88/buildlens/internal/tef"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	ConfigPath string
	ShowEmpty  bool
	UsedOnly   bool
	Facts      []string
	Watch      bool

	// NewRunID allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7.
	NewRunID func() string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <profile>",
		Short: "Derive facts from a Bazel profile",
		Long: `Load a Bazel JSON trace profile and report every fact the providers
can derive from it.

The profile may be gzipped. Use "-" to read it from stdin.

Example:
  buildlens analyze command.profile.gz
  buildlens analyze --format json --show-empty command.profile.gz
  buildlens analyze --fact CriticalPath --used-only command.profile.gz
  buildlens analyze --watch --config buildlens.yaml command.profile`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .cue)")
	cmd.Flags().BoolVar(&opts.ShowEmpty, "show-empty", false, "include empty facts in text output")
	cmd.Flags().BoolVar(&opts.UsedOnly, "used-only", false, "report only facts that were requested, with their dependencies")
	cmd.Flags().StringSliceVar(&opts.Facts, "fact", nil, "fact type to request (repeatable); default is all")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "re-run the analysis whenever the profile changes")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, path string, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		formatter := newFormatter(cmd, opts.RootOptions, opts.Format)
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}
	applyFlags(cfg, opts, cmd)

	formatter := newFormatter(cmd, opts.RootOptions, cfg.Format)
	formatter.VerboseLog("config: format=%s concurrency=%d disabled=%v", cfg.Format, cfg.Concurrency, cfg.DisabledProviders)

	if !opts.Watch {
		return analyzeOnce(contextOf(cmd), cfg, opts, path, formatter)
	}

	if path == "-" {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, "--watch cannot read from stdin", nil)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		if err := analyzeOnce(ctx, cfg, opts, path, formatter); err != nil {
			slog.Error("analysis failed", "path", path, "error", err)
		}
	}
	run()
	if err := watchProfile(ctx, path, run); err != nil {
		return WrapExitError(ExitCommandError, "failed to watch profile", err)
	}
	return nil
}

// applyFlags lets explicitly set flags override file and environment values.
func applyFlags(cfg *config.Config, opts *AnalyzeOptions, cmd *cobra.Command) {
	if f := cmd.Flag("format"); f != nil && f.Changed {
		cfg.Format = opts.Format
	}
	if cmd.Flags().Changed("show-empty") {
		cfg.ShowEmpty = opts.ShowEmpty
	}
	if cmd.Flags().Changed("used-only") {
		cfg.UsedOnly = opts.UsedOnly
	}
}

func analyzeOnce(ctx context.Context, cfg *config.Config, opts *AnalyzeOptions, path string, formatter *OutputFormatter) error {
	runID := newRunID(opts)
	formatter.TraceID = runID
	log := slog.With("run_id", runID)

	tr, err := loader.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("profile not found: %s", path), err)
		}
		return formatter.Fail(ExitFailure, ErrCodeInvalidProfile, "failed to load profile", err)
	}

	reg, err := providers.NewRegistry(tr, cfg.ProviderOptions(), cfg.DisabledProviders)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "failed to register providers", err)
	}

	rep, err := report.Collect(ctx, reg, report.Options{
		Concurrency: cfg.Concurrency,
		UsedOnly:    cfg.UsedOnly,
		Facts:       opts.Facts,
	})
	if err != nil {
		if errors.Is(err, report.ErrUnknownFact) {
			return formatter.Fail(ExitCommandError, ErrCodeUnknownFact, "unknown fact requested", err)
		}
		return formatter.Fail(ExitFailure, ErrCodeGeneric, "analysis interrupted", err)
	}

	total, empty := rep.FactCount()
	log.Info("analysis complete", "facts", total, "empty", empty, "failed", len(rep.Errors))

	for _, e := range rep.Errors {
		if tef.IsInvalidInput(e.Err) {
			return formatter.Fail(ExitFailure, ErrCodeInvalidProfile, "profile contains malformed events", e.Err)
		}
	}

	if err := render(formatter, rep, cfg); err != nil {
		return WrapExitError(ExitFailure, "failed to write report", err)
	}

	if len(opts.Facts) > 0 && len(rep.Errors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d requested fact(s) could not be produced", len(rep.Errors)))
	}
	return nil
}

func render(formatter *OutputFormatter, rep *report.Report, cfg *config.Config) error {
	switch cfg.Format {
	case "json":
		return formatter.Success(rep.Document())
	case "prom":
		return report.WritePrometheus(formatter.Writer, rep)
	default:
		return report.WriteText(formatter.Writer, rep, report.TextOptions{ShowEmpty: cfg.ShowEmpty})
	}
}

func newRunID(opts *AnalyzeOptions) string {
	if opts.NewRunID != nil {
		return opts.NewRunID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
