package scan

import (
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Walk scans the document text in a single forward pass and returns the
// accumulated facts. Ordinary malformed HTML (unbalanced tags, unknown
// entities) is tolerated; a non-nil error is returned only when the
// tokenizer itself fails.
func Walk(doc string) (*Facts, error) {
	w := &walker{
		facts: &Facts{
			IDs:       make(map[string]Location),
			LabelsFor: make(map[string]Location),
		},
		lines: lineOffsets(doc),
	}
	if err := w.run(doc); err != nil {
		return nil, err
	}
	return w.facts, nil
}

// frame is one entry on the transient open-element stack.
type frame struct {
	tag   string
	attrs Attrs
	loc   Location
}

// pending is an open <a> or <button> accumulating text until its close tag.
type pending struct {
	attrs  Attrs
	text   string
	loc    Location
	inForm bool
}

type walker struct {
	facts  *Facts
	lines  []int // byte offset of each line start
	offset int   // bytes consumed so far

	stack  []frame
	link   *pending
	button *pending
}

func (w *walker) run(doc string) error {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		}

		start := w.offset
		w.offset += len(z.Raw())
		loc := w.locate(start)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, attrs := tagAndAttrs(z)
			w.openTag(name, attrs, loc)
			// A self-closing tag never stays on the stack; ancestor checks
			// exclude the element itself either way.
			if tt == html.StartTagToken {
				w.stack = append(w.stack, frame{tag: name, attrs: attrs, loc: loc})
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			w.closeTag(string(name))
		case html.TextToken:
			w.text(string(z.Text()))
		}
	}
}

func (w *walker) openTag(name string, attrs Attrs, loc Location) {
	f := w.facts

	switch name {
	case "html":
		f.HasHTML = true
		f.HTMLLang = attrs["lang"]
	case "meta":
		if strings.EqualFold(attrs["name"], "viewport") {
			f.HasViewport = true
		}
	case "main":
		f.HasMain = true
	}

	if id := strings.TrimSpace(attrs["id"]); id != "" {
		if _, seen := f.IDs[id]; seen {
			f.DuplicateIDs = append(f.DuplicateIDs, DuplicateID{ID: id, Loc: loc})
		} else {
			f.IDs[id] = loc
		}
	}

	if name == "label" {
		// Last label wins; downstream only checks existence.
		if target := strings.TrimSpace(attrs["for"]); target != "" {
			f.LabelsFor[target] = loc
		}
	}

	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		f.Headings = append(f.Headings, Heading{Level: int(name[1] - '0'), Loc: loc})
	}

	switch name {
	case "img":
		f.Images = append(f.Images, Image{Attrs: attrs, Loc: loc})
	case "a":
		// A nested <a> silently replaces the pending record and the outer
		// one is lost. Known heuristic limitation, kept for compatibility.
		w.link = &pending{attrs: attrs, loc: loc}
	case "button":
		w.button = &pending{attrs: attrs, loc: loc, inForm: w.onStack("form")}
	case "input", "select", "textarea":
		f.Controls = append(f.Controls, Control{
			Tag:           name,
			Attrs:         attrs,
			Loc:           loc,
			ImplicitLabel: w.onStack("label"),
			InForm:        w.onStack("form"),
		})
	}
}

func (w *walker) closeTag(name string) {
	if name == "a" && w.link != nil {
		w.facts.Links = append(w.facts.Links, Link{
			Attrs: w.link.attrs,
			Text:  w.link.text,
			Loc:   w.link.loc,
		})
		w.link = nil
	}
	if name == "button" && w.button != nil {
		w.facts.Buttons = append(w.facts.Buttons, Button{
			Attrs:  w.button.attrs,
			Text:   w.button.text,
			Loc:    w.button.loc,
			InForm: w.button.inForm,
		})
		w.button = nil
	}

	// Pop down to the nearest matching open frame; if none is found the
	// stack is left unchanged. This tolerates unbalanced markup.
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].tag == name {
			w.stack = w.stack[:i]
			break
		}
	}
}

func (w *walker) text(data string) {
	t := strings.TrimSpace(data)
	if t == "" {
		return
	}
	if n := len(w.stack); n > 0 && w.stack[n-1].tag == "title" {
		w.facts.HasTitle = true
		w.facts.TitleText += t
	}
	// Independent accumulations: text inside both a pending link and a
	// pending button updates both.
	if w.link != nil {
		w.link.text += " " + t
	}
	if w.button != nil {
		w.button.text += " " + t
	}
}

// onStack reports whether an element with the given tag is currently open.
// Linear scan; fine at document scale.
func (w *walker) onStack(tag string) bool {
	for _, fr := range w.stack {
		if fr.tag == tag {
			return true
		}
	}
	return false
}

// locate converts a byte offset into a 1-based (line, column) pair.
func (w *walker) locate(offset int) Location {
	i := sort.Search(len(w.lines), func(i int) bool { return w.lines[i] > offset }) - 1
	return Location{Line: i + 1, Col: offset - w.lines[i] + 1}
}

func lineOffsets(doc string) []int {
	starts := []int{0}
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func tagAndAttrs(z *html.Tokenizer) (string, Attrs) {
	name, hasAttr := z.TagName()
	attrs := make(Attrs)
	for hasAttr {
		k, v, more := z.TagAttr()
		// The tokenizer already lower-cases attribute names; duplicate
		// attributes resolve last-wins.
		attrs[strings.ToLower(string(k))] = string(v)
		if !more {
			break
		}
	}
	return string(name), attrs
}

// CollapseText returns the whitespace-collapsed, trimmed form of raw
// accumulated text: the discernible text of an interactive element.
func CollapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
