package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/buildlens/internal/loader"
	"github.com/roach88/buildlens/internal/profile"
	"github.com/roach88/buildlens/internal/timeutil"
)

// EventsOptions holds flags for the events command.
type EventsOptions struct {
	*RootOptions
	Thread string
}

// ThreadSummary describes the events parsed for one thread.
type ThreadSummary struct {
	PID      int            `json:"pid"`
	TID      int            `json:"tid"`
	Name     string         `json:"name"`
	Complete int            `json:"complete"`
	Instants int            `json:"instants"`
	Counters map[string]int `json:"counters,omitempty"`

	// Busy is the summed duration of the thread's complete events.
	Busy string `json:"busy"`
}

// NewEventsCommand creates the events command.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "events <profile>",
		Short: "Summarize parsed events per thread",
		Long: `Parse a Bazel profile and print, for each thread, how many complete,
instant and counter events it recorded.

Example:
  buildlens events command.profile.gz
  buildlens events --thread "Critical Path" command.profile.gz`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Thread, "thread", "t", "", "only summarize the thread with this name")

	return cmd
}

func runEvents(opts *EventsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts.RootOptions, opts.Format)
	if opts.Format == "prom" {
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, "events does not support --format prom", nil)
	}

	tr, err := loader.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("profile not found: %s", path), err)
		}
		return formatter.Fail(ExitFailure, ErrCodeInvalidProfile, "failed to load profile", err)
	}

	bp, err := profile.FromTrace(tr)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeInvalidProfile, "profile contains malformed events", err)
	}

	threads := bp.Threads()
	if opts.Thread != "" {
		th, ok := bp.ThreadNamed(opts.Thread)
		if !ok {
			return formatter.Fail(ExitCommandError, ErrCodeUnknownThread, fmt.Sprintf("no thread named %q", opts.Thread), nil)
		}
		threads = []*profile.Thread{th}
	}

	summaries := make([]ThreadSummary, 0, len(threads))
	for _, th := range threads {
		summaries = append(summaries, summarizeThread(th))
	}

	if opts.Format == "json" {
		return formatter.Success(summaries)
	}
	_, err = fmt.Fprint(formatter.Writer, formatThreadSummaries(summaries))
	return err
}

func summarizeThread(th *profile.Thread) ThreadSummary {
	s := ThreadSummary{
		PID:      th.ID.PID,
		TID:      th.ID.TID,
		Name:     th.DisplayName(),
		Complete: len(th.CompleteEvents),
		Instants: len(th.Instants),
	}
	for name, samples := range th.Counters {
		if s.Counters == nil {
			s.Counters = make(map[string]int)
		}
		s.Counters[name] = len(samples)
	}
	var busy time.Duration
	for _, ev := range th.CompleteEvents {
		busy += ev.Duration
	}
	s.Busy = timeutil.FormatDuration(busy)
	return s
}

func formatThreadSummaries(summaries []ThreadSummary) string {
	var sb strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&sb, "%s [%d:%d]: %d complete (%s), %d instant",
			s.Name, s.PID, s.TID, s.Complete, s.Busy, s.Instants)

		names := make([]string, 0, len(s.Counters))
		for name := range s.Counters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, ", %s: %d samples", name, s.Counters[name])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
