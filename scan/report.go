package scan

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cratesift/cratesift/classify"
)

// Record is the report entry for one crate across every extracted
// version of it.
type Record struct {
	Name       string           `json:"name"`
	Versions   []string         `json:"versions,omitempty"`
	Verdict    classify.Verdict `json:"verdict"`
	Diagnostic string           `json:"diagnostic,omitempty"`
}

// Report is the outcome of one scan run. Every discovered crate appears
// exactly once, whatever its verdict.
type Report struct {
	Records []Record `json:"packages"`
}

// WriteText prints trivial crate names, one per line, matching the
// tool's role as a corpus filter. Verbose mode also lists non-trivial
// crates. Errors and ambiguous packages are always reported so that no
// crate silently drops out of the result.
func (r *Report) WriteText(w io.Writer, verbose bool) {
	for _, record := range r.Records {
		switch record.Verdict {
		case classify.Trivial:
			fmt.Fprintln(w, record.Name)
		case classify.NonTrivial:
			if verbose {
				fmt.Fprintf(w, "non trivial: %s\n", record.Name)
			}
		case classify.Error:
			fmt.Fprintf(w, "error: %s: %s\n", record.Name, record.Diagnostic)
		case classify.Ambiguous:
			fmt.Fprintf(w, "ambiguous: %s: %s\n", record.Name, record.Diagnostic)
		}
	}
}

// WriteJSON encodes the full report, including non-trivial crates.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
