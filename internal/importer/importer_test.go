//go:build unit

package importer

import (
	"errors"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		want     Format
		wantErr  bool
	}{
		{"html", "manual.html", FormatHTML, false},
		{"htm", "manual.HTM", FormatHTML, false},
		{"markdown", "README.md", FormatMarkdown, false},
		{"long markdown extension", "notes.markdown", FormatMarkdown, false},
		{"docx rejected", "handbook.docx", 0, true},
		{"doc rejected", "handbook.doc", 0, true},
		{"unknown rejected", "archive.zip", 0, true},
		{"no extension rejected", "README", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Detect(tc.filename)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect(%q) failed: %v", tc.filename, err)
			}
			if got != tc.want {
				t.Errorf("Detect(%q) = %v, want %v", tc.filename, got, tc.want)
			}
		})
	}
}

func TestDetect_WordRejectionMessage(t *testing.T) {
	_, err := Detect("handbook.docx")
	if err == nil || !strings.Contains(err.Error(), "Word documents") {
		t.Errorf("expected a specific user-facing rejection message, got %v", err)
	}
}

func TestParseHTML_HeadingSplit(t *testing.T) {
	doc := []byte(`<html><body>
<p>preamble is dropped</p>
<h2>A</h2>
<p>content of A</p>
<ul><li>still A</li></ul>
<h2>B</h2>
<p>content of B</p>
</body></html>`)

	sections, err := Parse("doc.html", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	if sections[0].Title != "A" || sections[1].Title != "B" {
		t.Errorf("expected titles A and B, got %q and %q", sections[0].Title, sections[1].Title)
	}
	if !strings.Contains(sections[0].ContentHTML, "content of A") || !strings.Contains(sections[0].ContentHTML, "still A") {
		t.Errorf("section A is missing its content: %q", sections[0].ContentHTML)
	}
	if strings.Contains(sections[0].ContentHTML, "content of B") {
		t.Errorf("section A leaked content past the next heading: %q", sections[0].ContentHTML)
	}
	if !strings.Contains(sections[1].ContentHTML, "content of B") {
		t.Errorf("section B is missing its content: %q", sections[1].ContentHTML)
	}
	if strings.Contains(sections[1].ContentHTML, "content of A") {
		t.Errorf("section B leaked earlier content: %q", sections[1].ContentHTML)
	}
}

func TestParseHTML_MixedHeadingLevels(t *testing.T) {
	doc := []byte(`<body><h1>Top</h1><p>one</p><h2>Sub</h2><p>two</p></body>`)
	sections, err := Parse("doc.html", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected h1 and h2 to both split, got %d sections", len(sections))
	}
	if sections[0].Title != "Top" || sections[1].Title != "Sub" {
		t.Errorf("unexpected titles: %q, %q", sections[0].Title, sections[1].Title)
	}
}

func TestParseHTML_NoHeadings(t *testing.T) {
	doc := []byte(`<body><p>just</p><p>paragraphs</p></body>`)
	sections, err := Parse("doc.html", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected a single section, got %d", len(sections))
	}
	if sections[0].Title != "Imported" {
		t.Errorf("expected title 'Imported', got %q", sections[0].Title)
	}
	if !strings.Contains(sections[0].ContentHTML, "just") || !strings.Contains(sections[0].ContentHTML, "paragraphs") {
		t.Errorf("expected the whole body as content, got %q", sections[0].ContentHTML)
	}
}

func TestParseHTML_EmptyHeadingGetsSyntheticTitle(t *testing.T) {
	doc := []byte(`<body><h2>  </h2><p>x</p></body>`)
	sections, err := Parse("doc.html", doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sections[0].Title != "Section 1" {
		t.Errorf("expected synthetic title 'Section 1', got %q", sections[0].Title)
	}
}

func TestParseMarkdown_Dialect(t *testing.T) {
	md := []byte("## Intro\n\nSome **bold** and *italic* text with a [link](https://example.com).\n\n- not a list item\n")

	sections, err := Parse("doc.md", md)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Intro" {
		t.Errorf("expected title 'Intro', got %q", sections[0].Title)
	}

	content := sections[0].ContentHTML
	if !strings.Contains(content, "<strong>bold</strong>") {
		t.Errorf("expected bold emphasis, got %q", content)
	}
	if !strings.Contains(content, "<em>italic</em>") {
		t.Errorf("expected italic emphasis, got %q", content)
	}
	if !strings.Contains(content, `<a href="https://example.com">link</a>`) {
		t.Errorf("expected link element, got %q", content)
	}
	// The reduced dialect does not transform lists; the line passes
	// through as literal paragraph text.
	if strings.Contains(content, "<ul>") || strings.Contains(content, "<li>") {
		t.Errorf("expected no list transformation, got %q", content)
	}
	if !strings.Contains(content, "- not a list item") {
		t.Errorf("expected the list line as literal text, got %q", content)
	}
}

func TestParseMarkdown_HeadingSplit(t *testing.T) {
	md := []byte("# First\n\nalpha\n\n# Second\n\nbeta\n")
	sections, err := Parse("doc.md", md)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "First" || sections[1].Title != "Second" {
		t.Errorf("unexpected titles: %q, %q", sections[0].Title, sections[1].Title)
	}
	if !strings.Contains(sections[0].ContentHTML, "alpha") || strings.Contains(sections[0].ContentHTML, "beta") {
		t.Errorf("unexpected first section content: %q", sections[0].ContentHTML)
	}
}
