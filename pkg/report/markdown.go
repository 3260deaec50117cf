package report

import (
	"fmt"
	"io"
	"strings"
)

const emptyReport = "## UI Audit\n\nNo issues detected by the lightweight audit (this is not a full accessibility review).\n"

var sectionTitles = map[Severity]string{
	High: "High",
	Med:  "Medium",
	Low:  "Low",
}

// WriteMarkdown writes the human-readable report to w. Findings are grouped
// into High/Medium/Low priority sections (empty sections omitted) and sorted
// within each section by category, then message. A report with no findings
// renders as a single fixed paragraph.
func (r *Report) WriteMarkdown(w io.Writer) {
	if len(r.Findings) == 0 {
		io.WriteString(w, emptyReport)
		return
	}

	sorted := r.Sorted()

	lines := []string{
		"## UI Audit\n",
		"> Note: This audit flags common issues. It does **not** guarantee WCAG compliance.\n",
	}

	for _, sev := range []Severity{High, Med, Low} {
		var bucket []Finding
		for _, f := range sorted {
			if f.Severity == sev {
				bucket = append(bucket, f)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("### %s priority\n", sectionTitles[sev]))
		for _, f := range bucket {
			lines = append(lines, renderFinding(f))
		}
		lines = append(lines, "")
	}

	io.WriteString(w, strings.Join(lines, "\n"))
}

func renderFinding(f Finding) string {
	loc := ""
	if f.Line != nil {
		col := 0
		if f.Col != nil {
			col = *f.Col
		}
		loc = fmt.Sprintf(" (line %d:%d)", *f.Line, col)
	}
	elem := ""
	if f.Element != nil && *f.Element != "" {
		elem = fmt.Sprintf("`%s` ", *f.Element)
	}
	return fmt.Sprintf("- %s**%s**%s\n  - Hint: %s\n", elem, f.Message, loc, f.Hint)
}
