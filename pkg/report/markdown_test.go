package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewReport().WriteMarkdown(&buf)

	out := buf.String()
	if out != emptyReport {
		t.Errorf("empty report = %q", out)
	}
	for _, header := range []string{"High priority", "Medium priority", "Low priority"} {
		if strings.Contains(out, header) {
			t.Errorf("empty report must not contain %q", header)
		}
	}
}

func sampleReport() *Report {
	r := NewReport()
	r.AddElement(Low, Accessibility, "No obvious 'Skip to content' link detected.", "Consider adding a skip link.", "a[href^=#]")
	r.AddAt(High, Accessibility, "Image missing alt attribute.", "Add alt text.", 12, 5, "img")
	r.Add(Med, Structure, "Missing <html> root element.", "Add a root element.")
	r.AddElement(High, Responsive, `Missing <meta name="viewport"> (mobile rendering may be broken).`, "Add a viewport meta tag.", "meta[name=viewport]")
	return r
}

func TestWriteMarkdownSections(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteMarkdown(&buf)
	out := buf.String()

	// Sections appear in fixed order.
	hi := strings.Index(out, "### High priority")
	med := strings.Index(out, "### Medium priority")
	low := strings.Index(out, "### Low priority")
	if hi < 0 || med < 0 || low < 0 {
		t.Fatalf("missing section headers:\n%s", out)
	}
	if !(hi < med && med < low) {
		t.Errorf("sections out of order: high=%d med=%d low=%d", hi, med, low)
	}

	// Within a section, findings sort by category then message.
	accessibility := strings.Index(out, "Image missing alt attribute.")
	responsive := strings.Index(out, "Missing <meta")
	if !(hi < accessibility && accessibility < responsive && responsive < med) {
		t.Errorf("high-priority bullets out of order:\n%s", out)
	}

	if !strings.Contains(out, "(line 12:5)") {
		t.Error("located finding missing (line L:C) suffix")
	}
	if !strings.Contains(out, "`img` **Image missing alt attribute.**") {
		t.Error("element tag prefix missing")
	}
	if !strings.Contains(out, "  - Hint: Add alt text.") {
		t.Error("indented hint line missing")
	}
	if !strings.Contains(out, "does **not** guarantee WCAG compliance") {
		t.Error("compliance disclaimer missing")
	}
}

func TestWriteMarkdownOmitsEmptySections(t *testing.T) {
	r := NewReport()
	r.Add(Low, Structure, "No <h1> found.", "Add one.")

	var buf bytes.Buffer
	r.WriteMarkdown(&buf)
	out := buf.String()

	if strings.Contains(out, "High priority") || strings.Contains(out, "Medium priority") {
		t.Errorf("sections with zero members must be omitted:\n%s", out)
	}
	if !strings.Contains(out, "### Low priority") {
		t.Errorf("low section missing:\n%s", out)
	}
}

// TestWriteMarkdownParses feeds the rendered report through a real markdown
// parser and checks the document structure: one level-2 title, level-3
// section headings, one list per section.
func TestWriteMarkdownParses(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteMarkdown(&buf)

	src := buf.Bytes()
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var h2, h3, lists int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			switch node.Level {
			case 2:
				h2++
			case 3:
				h3++
			}
		case *ast.List:
			if node.Parent() == doc {
				lists++
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if h2 != 1 {
		t.Errorf("got %d level-2 headings, want 1", h2)
	}
	if h3 != 3 {
		t.Errorf("got %d level-3 headings, want 3 (one per severity)", h3)
	}
	if lists != 3 {
		t.Errorf("got %d top-level lists, want 3", lists)
	}
}
