package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the exportable statistics document.
type Report struct {
	GeneratedAt string    `json:"generatedAt" yaml:"generatedAt"`
	Library     Summary   `json:"library" yaml:"library"`
	API         *APIStats `json:"api,omitempty" yaml:"api,omitempty"`
}

// NewReport assembles a report from the computed aggregates.
func NewReport(library Summary, api *APIStats) Report {
	return Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Library:     library,
		API:         api,
	}
}

// Encode writes the report in the requested format ("json" or "yaml").
func (r Report) Encode(w io.Writer, format string) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
