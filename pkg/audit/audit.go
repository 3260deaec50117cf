// Package audit evaluates a fixed battery of heuristic usability and
// accessibility checks over the facts collected by pkg/scan. It is a
// best-effort linter, not a WCAG compliance checker.
package audit

import (
	"fmt"

	"github.com/graspable/uiaudit/pkg/report"
	"github.com/graspable/uiaudit/pkg/scan"
)

// Options configures a rule run. The zero value runs every rule at its
// default severity.
type Options struct {
	// Disabled suppresses the listed rules. A disabled rule's condition is
	// still evaluated (rule exclusivity is unchanged); only its emission is
	// dropped.
	Disabled map[string]bool

	// Severities overrides the emitted severity of a rule by ID.
	Severities map[string]report.Severity
}

// Audit scans the document text and evaluates the full rule battery.
func Audit(doc string) *report.Report {
	return AuditWithOptions(doc, Options{})
}

// AuditWithOptions runs the audit with the given options. Rules are
// independent and total over the fact set; once facts exist, no rule can
// fail. A structural parse failure is converted into a single high-severity
// structure finding rather than an error.
func AuditWithOptions(doc string, opts Options) *report.Report {
	r := report.NewReport()

	facts, err := scan.Walk(doc)
	if err != nil {
		r.Add(report.High, report.Structure,
			fmt.Sprintf("Failed to parse HTML: %v", err),
			"Check for malformed markup; try validating the HTML.")
		return r
	}

	e := &evaluator{facts: facts, r: r, opts: opts}
	e.checkDocument()
	e.checkDuplicateIDs()
	e.checkHeadings()
	e.checkImages()
	e.checkLinks()
	e.checkButtons()
	e.checkControls()
	return r
}

type evaluator struct {
	facts *scan.Facts
	r     *report.Report
	opts  Options
}

func (e *evaluator) severity(id string, def report.Severity) report.Severity {
	if s, ok := e.opts.Severities[id]; ok {
		return s
	}
	return def
}

func (e *evaluator) add(id string, cat report.Category, msg, hint string) {
	if e.opts.Disabled[id] {
		return
	}
	e.r.Add(e.severity(id, ruleDefaults[id]), cat, msg, hint)
}

func (e *evaluator) addElement(id string, cat report.Category, msg, hint, element string) {
	if e.opts.Disabled[id] {
		return
	}
	e.r.AddElement(e.severity(id, ruleDefaults[id]), cat, msg, hint, element)
}

func (e *evaluator) addAt(id string, cat report.Category, msg, hint string, loc scan.Location, element string) {
	if e.opts.Disabled[id] {
		return
	}
	e.r.AddAt(e.severity(id, ruleDefaults[id]), cat, msg, hint, loc.Line, loc.Col, element)
}
