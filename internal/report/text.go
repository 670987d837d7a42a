package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TextOptions controls the text renderer.
type TextOptions struct {
	// ShowEmpty lists empty facts together with their reason.
	ShowEmpty bool
}

// WriteText renders r for humans: one block per provider, then any
// failures, then a totals line.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	p := message.NewPrinter(language.English)

	for _, pf := range r.Providers {
		visible := pf.Facts
		if !opts.ShowEmpty {
			visible = visible[:0:0]
			for _, f := range pf.Facts {
				if !f.Empty {
					visible = append(visible, f)
				}
			}
		}
		if len(visible) == 0 {
			continue
		}

		if _, err := p.Fprintf(w, "%s\n", pf.Name); err != nil {
			return err
		}
		for _, f := range visible {
			var err error
			if f.Empty {
				_, err = p.Fprintf(w, "  %s: (empty) %s\n", f.Type, f.EmptyReason)
			} else {
				_, err = p.Fprintf(w, "  %s: %s\n", f.Type, f.Summary)
			}
			if err != nil {
				return err
			}
		}
	}

	if len(r.Errors) > 0 {
		if _, err := p.Fprintf(w, "Errors\n"); err != nil {
			return err
		}
		for _, e := range r.Errors {
			if _, err := p.Fprintf(w, "  %s\n", e.String()); err != nil {
				return err
			}
		}
	}

	total, empty := r.FactCount()
	_, err := p.Fprintf(w, "%d facts (%d empty, %d failed) from %d providers\n",
		total, empty, len(r.Errors), len(r.Providers))
	return err
}
