package importer

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// parseHTML splits an HTML document into sections on its top-level h1/h2
// headings. Each heading starts a section titled with the heading's text;
// the section's content is every sibling node between that heading and the
// next one (or end of document). A document without headings becomes a
// single section titled "Imported".
func parseHTML(data []byte) ([]Section, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return []Section{{Title: "Imported"}}, nil
	}

	var headings []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "h1" || c.Data == "h2") {
			headings = append(headings, c)
		}
	}

	if len(headings) == 0 {
		var buf bytes.Buffer
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return nil, fmt.Errorf("failed to render imported content: %w", err)
			}
		}
		return []Section{{Title: "Imported", ContentHTML: buf.String()}}, nil
	}

	isHeading := make(map[*html.Node]struct{}, len(headings))
	for _, h := range headings {
		isHeading[h] = struct{}{}
	}

	sections := make([]Section, 0, len(headings))
	for i, h := range headings {
		title := strings.TrimSpace(textContent(h))
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		var buf bytes.Buffer
		for c := h.NextSibling; c != nil; c = c.NextSibling {
			if _, stop := isHeading[c]; stop {
				break
			}
			if err := html.Render(&buf, c); err != nil {
				return nil, fmt.Errorf("failed to render imported content: %w", err)
			}
		}
		sections = append(sections, Section{Title: title, ContentHTML: buf.String()})
	}
	return sections, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
