package importer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// markdown is a deliberately reduced dialect: `#`..`######` headings,
// `**bold**`/`*italic*` emphasis, `[text](url)` links, and blank-line
// separated paragraphs. Lists, tables, code blocks, and blockquotes are not
// transformed; they pass through as literal paragraph text. The parser is
// assembled from only the block and inline parsers for that dialect.
var markdown = goldmark.New(
	goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewATXHeadingParser(), 600),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewLinkParser(), 200),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// parseMarkdown converts Markdown to HTML with the reduced dialect and then
// splits it into sections exactly like an HTML import.
func parseMarkdown(data []byte) ([]Section, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(data, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown: %w", err)
	}
	return parseHTML(buf.Bytes())
}
