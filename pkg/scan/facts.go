// Package scan implements the markup walker: a single forward pass over an
// HTML document that accumulates a flat set of structural facts without
// building a tree. The walker is tolerant of malformed markup; unbalanced
// tags are recovered through the open-element stack and never abort a walk.
package scan

// Location is a 1-based (line, column) position in the source text.
type Location struct {
	Line int
	Col  int
}

// Attrs maps lower-cased attribute names to values for one open tag.
// A valueless attribute (bare "disabled") maps to the empty string.
type Attrs map[string]string

// Heading is one h1..h6 element, recorded in document order.
type Heading struct {
	Level int
	Loc   Location
}

// Image is one <img> element with its full attribute snapshot.
type Image struct {
	Attrs Attrs
	Loc   Location
}

// Link is one <a> element. Text is the raw accumulated text between the open
// and close tags, whitespace-joined but not yet collapsed; it includes text
// from nested elements, since the walker does not distinguish nesting for
// text accumulation.
type Link struct {
	Attrs Attrs
	Text  string
	Loc   Location
}

// Button is one <button> element, finalized at its closing tag.
type Button struct {
	Attrs  Attrs
	Text   string
	Loc    Location
	InForm bool // a <form> was on the open-element stack when the button opened
}

// Control is one form control: <input>, <select> or <textarea>. Controls are
// recorded at open-tag time; the ancestor flags are known immediately.
type Control struct {
	Tag           string
	Attrs         Attrs
	Loc           Location
	ImplicitLabel bool // nested inside a <label> when opened
	InForm        bool
}

// DuplicateID records a second-or-later occurrence of an id value. Three
// occurrences of the same id yield two entries.
type DuplicateID struct {
	ID  string
	Loc Location
}

// Facts is the flat fact set accumulated by one walk. It is write-once
// during the walk and read-only during rule evaluation.
type Facts struct {
	HasHTML     bool
	HTMLLang    string // empty when the root carries no (or an empty) lang
	HasTitle    bool
	TitleText   string
	HasViewport bool
	HasMain     bool

	IDs          map[string]Location // id -> first-seen location
	DuplicateIDs []DuplicateID
	LabelsFor    map[string]Location // label[for] target id -> label location

	Headings []Heading
	Images   []Image
	Links    []Link
	Buttons  []Button
	Controls []Control
}
