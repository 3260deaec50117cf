package report

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the findings as a JSON array to w, in emission order.
// Every finding object carries all seven fields; line, col and element are
// explicit nulls when unset. An empty report encodes as [].
func (r *Report) WriteJSON(w io.Writer) error {
	findings := r.Findings
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}
