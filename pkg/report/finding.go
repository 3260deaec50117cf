package report

import (
	"fmt"
	"sort"
)

// Severity levels for audit findings.
type Severity string

const (
	High Severity = "high"
	Med  Severity = "med"
	Low  Severity = "low"
)

// Rank orders severities for display: high sorts before med, med before low.
// Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case High:
		return 0
	case Med:
		return 1
	case Low:
		return 2
	}
	return 9
}

// Category groups findings by the concern they touch.
type Category string

const (
	Accessibility Category = "accessibility"
	Semantics     Category = "semantics"
	Forms         Category = "forms"
	Content       Category = "content"
	Structure     Category = "structure"
	Responsive    Category = "responsive"
	Interaction   Category = "interaction"
)

// Finding represents a single audit finding. Line, Col and Element are
// pointers so that JSON output carries explicit nulls when a finding has no
// source location or element tag.
type Finding struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint"`
	Line     *int     `json:"line"`
	Col      *int     `json:"col"`
	Element  *string  `json:"element"`
}

func (f Finding) String() string {
	s := fmt.Sprintf("%s(%s): %s", f.Severity, f.Category, f.Message)
	if f.Element != nil {
		s += fmt.Sprintf(" <%s>", *f.Element)
	}
	if f.Line != nil {
		col := 0
		if f.Col != nil {
			col = *f.Col
		}
		s += fmt.Sprintf(" [line %d:%d]", *f.Line, col)
	}
	return s
}

// Report collects the findings from one audit run, in emission order.
type Report struct {
	Findings []Finding
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a document-level finding with no location or element.
func (r *Report) Add(sev Severity, cat Category, msg, hint string) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Category: cat,
		Message:  msg,
		Hint:     hint,
	})
}

// AddElement appends a finding tied to an element tag but no source location.
func (r *Report) AddElement(sev Severity, cat Category, msg, hint, element string) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Category: cat,
		Message:  msg,
		Hint:     hint,
		Element:  &element,
	})
}

// AddAt appends a finding with a 1-based source location and an element tag.
func (r *Report) AddAt(sev Severity, cat Category, msg, hint string, line, col int, element string) {
	r.Findings = append(r.Findings, Finding{
		Severity: sev,
		Category: cat,
		Message:  msg,
		Hint:     hint,
		Line:     &line,
		Col:      &col,
		Element:  &element,
	})
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Sorted returns the findings ordered for display: severity rank first, then
// category, then message. The sort is total, so the result does not depend on
// emission order. The receiver is left untouched.
func (r *Report) Sorted() []Finding {
	out := make([]Finding, len(r.Findings))
	copy(out, r.Findings)
	sort.SliceStable(out, func(i, j int) bool {
		if a, b := out[i].Severity.Rank(), out[j].Severity.Rank(); a != b {
			return a < b
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Message < out[j].Message
	})
	return out
}
