// Package render turns generated changelog text into its final output form.
// The model's text is always emitted verbatim; Markdown mode only validates
// the structure and warns, it never rewrites.
package render

import (
	"bytes"
	"fmt"
	"log"

	"chronicle/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Render produces the final output string for a changelog result.
func Render(result models.ChangelogResult) (string, error) {
	switch result.Format {
	case models.FormatPlain:
		return result.Text, nil
	case models.FormatMarkdown:
		checkMarkdown(result.Text)
		return result.Text, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", result.Format)
	}
}

// checkMarkdown parses the text and warns when it does not look like a
// structured changelog (no headings at all). Diagnostics only; the text is
// still written untouched.
func checkMarkdown(s string) {
	source := []byte(s)
	doc := markdown.Parser().Parse(text.NewReader(source))

	headings := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if _, ok := n.(*ast.Heading); ok {
				headings++
			}
		}
		return ast.WalkContinue, nil
	})
	if headings == 0 {
		log.Printf("warning: generated changelog has no Markdown headings")
	}

	// A render through goldmark doubles as a well-formedness check.
	var buf bytes.Buffer
	if err := markdown.Renderer().Render(&buf, source, doc); err != nil {
		log.Printf("warning: generated changelog did not render cleanly as Markdown: %v", err)
	}
}
