package report

import (
	"encoding/json"
	"io"
)

// FactDocument is the JSON form of one fact.
type FactDocument struct {
	Description string `json:"description"`
	Summary     string `json:"summary"`
	Empty       bool   `json:"empty"`
	EmptyReason string `json:"empty_reason,omitempty"`
}

// Document is the JSON form of a report.
type Document struct {
	// Facts maps provider name to fact type name to fact.
	Facts  map[string]map[string]FactDocument `json:"facts"`
	Errors []ErrorDocument                    `json:"errors,omitempty"`
}

// ErrorDocument is the JSON form of a failed fact.
type ErrorDocument struct {
	Type     string `json:"type"`
	Provider string `json:"provider,omitempty"`
	Message  string `json:"message"`
}

// Document converts r into its JSON form.
func (r *Report) Document() Document {
	doc := Document{Facts: make(map[string]map[string]FactDocument, len(r.Providers))}
	for _, pf := range r.Providers {
		facts := make(map[string]FactDocument, len(pf.Facts))
		for _, f := range pf.Facts {
			facts[f.Type] = FactDocument{
				Description: f.Description,
				Summary:     f.Summary,
				Empty:       f.Empty,
				EmptyReason: f.EmptyReason,
			}
		}
		doc.Facts[pf.Name] = facts
	}
	for _, e := range r.Errors {
		doc.Errors = append(doc.Errors, ErrorDocument{Type: e.Type, Provider: e.Provider, Message: e.Err.Error()})
	}
	return doc
}

// WriteJSON writes r's document as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Document())
}
