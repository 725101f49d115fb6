package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported import document format.
type Format int

const (
	FormatHTML Format = iota
	FormatMarkdown
)

// ErrUnsupportedFormat is returned when a document cannot be imported. Word
// documents are rejected deliberately; this is an unsupported-format
// boundary, not a parse failure.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Section is one page-worth of imported content.
type Section struct {
	Title       string
	ContentHTML string
}

// Detect determines the import format from the file name's extension.
func Detect(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".doc", ".docx":
		return 0, fmt.Errorf("%w: Word documents cannot be imported, please upload HTML or Markdown", ErrUnsupportedFormat)
	default:
		return 0, fmt.Errorf("%w: %q is not an HTML or Markdown file", ErrUnsupportedFormat, filename)
	}
}

// Parse converts an uploaded document into one or more sections, each of
// which becomes a page. The import is all-or-nothing; a parse error yields
// no sections.
func Parse(filename string, data []byte) ([]Section, error) {
	format, err := Detect(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatMarkdown:
		return parseMarkdown(data)
	default:
		return parseHTML(data)
	}
}
