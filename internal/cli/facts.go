package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/buildlens/internal/providers"
	"github.com/roach88/buildlens/internal/tef"
)

// ProviderFacts lists the fact types one provider declares.
type ProviderFacts struct {
	Provider string   `json:"provider"`
	Facts    []string `json:"facts"`
}

// NewFactsCommand creates the facts command.
func NewFactsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List the facts each provider can derive",
		Long: `List the default providers and the fact types they bind.

The names printed here are accepted by "analyze --fact" and by the
disabled_providers config setting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacts(rootOpts, cmd)
		},
	}

	return cmd
}

// DeclaredFacts returns the fact types bound by each default provider, in
// registration order.
func DeclaredFacts() []ProviderFacts {
	var out []ProviderFacts
	for _, p := range providers.Default(tef.Trace{}, providers.Options{}) {
		pf := ProviderFacts{Provider: p.Name()}
		for _, b := range p.Bindings() {
			pf.Facts = append(pf.Facts, b.Type.Name())
		}
		out = append(out, pf)
	}
	return out
}

func runFacts(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(cmd, opts, opts.Format)
	declared := DeclaredFacts()

	switch opts.Format {
	case "json":
		return formatter.Success(declared)
	case "prom":
		return formatter.Fail(ExitCommandError, ErrCodeUnsupported, "facts does not support --format prom", nil)
	}

	var sb strings.Builder
	for _, pf := range declared {
		fmt.Fprintf(&sb, "%s\n", pf.Provider)
		for _, f := range pf.Facts {
			fmt.Fprintf(&sb, "  %s\n", f)
		}
	}
	_, err := fmt.Fprint(formatter.Writer, sb.String())
	return err
}
