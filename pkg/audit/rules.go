package audit

import (
	"fmt"
	"strings"

	"github.com/graspable/uiaudit/pkg/report"
	"github.com/graspable/uiaudit/pkg/scan"
)

// Rule IDs. Findings never carry these on the wire; they exist so the rules
// file can disable a rule or override its severity.
const (
	RuleHTMLRoot      = "DOC-001" // missing <html> root element
	RuleHTMLLang      = "DOC-002" // missing lang attribute on <html>
	RuleTitle         = "DOC-003" // missing or empty <title>
	RuleViewport      = "DOC-004" // missing meta viewport
	RuleMainLandmark  = "DOC-005" // no <main> landmark
	RuleDuplicateID   = "DOC-006" // duplicate id value
	RuleNoH1          = "HED-001" // no <h1>
	RuleMultipleH1    = "HED-002" // more than one <h1>
	RuleHeadingJump   = "HED-003" // heading level jump
	RuleImgAlt        = "IMG-001" // image missing alt attribute
	RuleImgEmptyAlt   = "IMG-002" // image with empty alt
	RuleAnchorHref    = "LNK-001" // anchor without href
	RuleEmptyLink     = "LNK-002" // link with no discernible text
	RuleSkipLink      = "LNK-003" // no skip link detected
	RuleEmptyButton   = "BTN-001" // button with no discernible text
	RuleButtonType    = "BTN-002" // button in form without type
	RuleControlLabel  = "FRM-001" // form control missing a label
	RulePlaceholder   = "FRM-002" // placeholder used instead of a label
)

// ruleDefaults maps every rule ID to its default severity. The map doubles
// as the registry the rules file is validated against.
var ruleDefaults = map[string]report.Severity{
	RuleHTMLRoot:     report.Med,
	RuleHTMLLang:     report.High,
	RuleTitle:        report.Med,
	RuleViewport:     report.High,
	RuleMainLandmark: report.Med,
	RuleDuplicateID:  report.High,
	RuleNoH1:         report.Med,
	RuleMultipleH1:   report.Low,
	RuleHeadingJump:  report.Low,
	RuleImgAlt:       report.High,
	RuleImgEmptyAlt:  report.Low,
	RuleAnchorHref:   report.Med,
	RuleEmptyLink:    report.High,
	RuleSkipLink:     report.Low,
	RuleEmptyButton:  report.High,
	RuleButtonType:   report.Low,
	RuleControlLabel: report.High,
	RulePlaceholder:  report.Med,
}

// KnownRule reports whether id names a rule in the registry.
func KnownRule(id string) bool {
	_, ok := ruleDefaults[id]
	return ok
}

func (e *evaluator) checkDocument() {
	f := e.facts

	if !f.HasHTML {
		e.add(RuleHTMLRoot, report.Structure,
			"Missing <html> root element.",
			"Ensure the document has a proper <!doctype html> and <html> root.")
	} else if f.HTMLLang == "" {
		e.addElement(RuleHTMLLang, report.Accessibility,
			"Missing lang attribute on <html>.",
			`Add a language, e.g. <html lang="en">, to improve screen reader behavior.`,
			"html")
	}

	if !f.HasTitle || strings.TrimSpace(f.TitleText) == "" {
		e.addElement(RuleTitle, report.Content,
			"Missing or empty <title>.",
			"Add a descriptive page title (helps tabs and assistive tech).",
			"title")
	}

	if !f.HasViewport {
		e.addElement(RuleViewport, report.Responsive,
			`Missing <meta name="viewport"> (mobile rendering may be broken).`,
			`Add: <meta name="viewport" content="width=device-width, initial-scale=1">`,
			"meta[name=viewport]")
	}

	if !f.HasMain {
		e.addElement(RuleMainLandmark, report.Semantics,
			"No <main> landmark found.",
			"Wrap primary page content in <main> to improve navigation for assistive tech.",
			"main")
	}
}

func (e *evaluator) checkDuplicateIDs() {
	for _, dup := range e.facts.DuplicateIDs {
		e.addAt(RuleDuplicateID, report.Semantics,
			fmt.Sprintf("Duplicate id %q detected.", dup.ID),
			"IDs must be unique. Rename one of the elements or remove the duplicate id.",
			dup.Loc, "#"+dup.ID)
	}
}

func (e *evaluator) checkHeadings() {
	h1Count := 0
	for _, h := range e.facts.Headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	if h1Count == 0 {
		e.addElement(RuleNoH1, report.Structure,
			"No <h1> found.",
			"Add a single <h1> that describes the page/section for clear hierarchy.",
			"h1")
	} else if h1Count > 1 {
		e.addElement(RuleMultipleH1, report.Structure,
			fmt.Sprintf("Multiple <h1> elements found (%d).", h1Count),
			"Often best to keep one primary <h1>. If multiple are used, ensure it is intentional and structured.",
			"h1")
	}

	// Each heading is compared to its immediate predecessor in document
	// order; last always advances, so consecutive jumps each flag.
	last := 0
	for _, h := range e.facts.Headings {
		if last != 0 && h.Level-last > 1 {
			e.addAt(RuleHeadingJump, report.Structure,
				fmt.Sprintf("Heading level jumps from h%d to h%d.", last, h.Level),
				"Avoid skipping heading levels; it can confuse outline navigation for assistive tech.",
				h.Loc, fmt.Sprintf("h%d", h.Level))
		}
		last = h.Level
	}
}

func (e *evaluator) checkImages() {
	for _, img := range e.facts.Images {
		alt, present := img.Attrs["alt"]
		switch {
		case !present:
			e.addAt(RuleImgAlt, report.Accessibility,
				"Image missing alt attribute.",
				`Add alt text. Use alt="" for decorative images; meaningful text for informative images.`,
				img.Loc, "img")
		case strings.TrimSpace(alt) == "":
			// Empty alt is often correct for decorative images; informational only.
			e.addAt(RuleImgEmptyAlt, report.Accessibility,
				`Image has empty alt="". Ensure this image is purely decorative.`,
				`If the image conveys meaning, provide descriptive alt text. If decorative, alt="" is correct.`,
				img.Loc, "img")
		}
	}
}

func (e *evaluator) checkLinks() {
	skipDetected := false
	for _, l := range e.facts.Links {
		text := scan.CollapseText(l.Text)
		href := strings.TrimSpace(l.Attrs["href"])
		aria := strings.TrimSpace(l.Attrs["aria-label"])

		if href == "" {
			e.addAt(RuleAnchorHref, report.Interaction,
				"Anchor <a> without href found.",
				"Use <button> for actions, or add a valid href for navigation links.",
				l.Loc, "a")
		}

		if text == "" && aria == "" {
			e.addAt(RuleEmptyLink, report.Accessibility,
				"Link has no discernible text (empty link).",
				"Add visible link text or aria-label. If it is an icon link, aria-label is required.",
				l.Loc, "a")
		}

		if strings.HasPrefix(href, "#") &&
			(strings.Contains(strings.ToLower(text), "skip") || strings.Contains(strings.ToLower(aria), "skip")) {
			skipDetected = true
		}
	}

	if !skipDetected {
		e.addElement(RuleSkipLink, report.Accessibility,
			"No obvious 'Skip to content' link detected.",
			"Consider adding a visually-hidden skip link for keyboard users (especially on content-heavy pages).",
			"a[href^=#]")
	}
}

func (e *evaluator) checkButtons() {
	for _, b := range e.facts.Buttons {
		text := scan.CollapseText(b.Text)
		aria := strings.TrimSpace(b.Attrs["aria-label"])

		if text == "" && aria == "" {
			e.addAt(RuleEmptyButton, report.Accessibility,
				"Button has no discernible text (empty button).",
				"Add button text or aria-label. Icon-only buttons require aria-label.",
				b.Loc, "button")
		}

		if _, hasType := b.Attrs["type"]; b.InForm && !hasType {
			e.addAt(RuleButtonType, report.Forms,
				"Button inside form missing type attribute (defaults to submit).",
				`Add type="button" for non-submit buttons to avoid accidental form submits.`,
				b.Loc, "button")
		}
	}
}

func (e *evaluator) checkControls() {
	for _, c := range e.facts.Controls {
		id := strings.TrimSpace(c.Attrs["id"])
		ariaLabel := strings.TrimSpace(c.Attrs["aria-label"])
		ariaLabelledBy := strings.TrimSpace(c.Attrs["aria-labelledby"])
		placeholder := strings.TrimSpace(c.Attrs["placeholder"])

		explicit := false
		if id != "" {
			_, explicit = e.facts.LabelsFor[id]
		}
		hasLabel := explicit || c.ImplicitLabel
		hasAria := ariaLabel != "" || ariaLabelledBy != ""

		// The two branches are mutually exclusive: a control is never
		// flagged for both a missing label and a placeholder-as-label.
		// The placeholder branch takes precedence with its weaker message.
		switch {
		case placeholder != "" && !hasLabel && !hasAria:
			e.addAt(RulePlaceholder, report.Forms,
				fmt.Sprintf("%s uses placeholder text but no real label.", c.Tag),
				"Add a visible label; placeholders disappear on input and reduce accessibility.",
				c.Loc, c.Tag)
		case !hasLabel && !hasAria:
			e.addAt(RuleControlLabel, report.Accessibility,
				fmt.Sprintf("%s appears to be missing an associated label.", c.Tag),
				"Add a <label> (preferred) or aria-label/aria-labelledby. Placeholder is not a label.",
				c.Loc, c.Tag)
		}
	}
}
