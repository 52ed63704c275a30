package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("A post with **bold** text and a [link](https://example.com).")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", out)
	}
	if !strings.Contains(out, `<a href="https://example.com"`) {
		t.Errorf("link not rendered: %q", out)
	}
}

func TestToHTMLCodeBlock(t *testing.T) {
	out, err := ToHTML("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// Syntax highlighting wraps the block in a styled <pre>.
	if !strings.Contains(out, "<pre") {
		t.Errorf("code block not rendered: %q", out)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	out, err := ToHTML(`hello <script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML should not pass through: %q", out)
	}
}
