package render

import (
	"testing"

	"chronicle/internal/models"
)

func TestRender_MarkdownIsVerbatim(t *testing.T) {
	text := "## v1.0\n- Added login"
	out, err := Render(models.ChangelogResult{Text: text, Format: models.FormatMarkdown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != text {
		t.Fatalf("markdown output was modified:\nwant %q\ngot  %q", text, out)
	}
}

func TestRender_PlainIsVerbatim(t *testing.T) {
	text := "v1.0\nAdded login\n"
	out, err := Render(models.ChangelogResult{Text: text, Format: models.FormatPlain})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != text {
		t.Fatalf("plain output was modified: %q", out)
	}
}

func TestRender_HeadinglessMarkdownStillVerbatim(t *testing.T) {
	// The heading check only warns; the text must pass through untouched.
	text := "just a sentence without any structure"
	out, err := Render(models.ChangelogResult{Text: text, Format: models.FormatMarkdown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != text {
		t.Fatalf("output was modified: %q", out)
	}
}

func TestRender_UnknownFormatFails(t *testing.T) {
	_, err := Render(models.ChangelogResult{Text: "x", Format: models.OutputFormat("html")})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}
