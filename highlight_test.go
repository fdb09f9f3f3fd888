package md2docx

import (
	"strings"
	"testing"
)

func TestHighlightCode_LineCountMatchesSource(t *testing.T) {
	t.Parallel()

	source := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	lines, err := highlightCode(source, "go", "github")
	if err != nil {
		t.Fatalf("highlightCode() error = %v", err)
	}
	want := len(strings.Split(source, "\n"))
	if len(lines) != want {
		t.Errorf("lines = %d, want %d", len(lines), want)
	}
	// The blank line carries no tokens.
	if len(lines[1]) != 0 {
		t.Errorf("blank line has %d tokens, want 0", len(lines[1]))
	}
}

func TestHighlightCode_TextRoundTrip(t *testing.T) {
	t.Parallel()

	source := "x := 1\ny := \"two\""
	lines, err := highlightCode(source, "go", "github")
	if err != nil {
		t.Fatalf("highlightCode() error = %v", err)
	}

	var sb strings.Builder
	for i, tokens := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, tok := range tokens {
			sb.WriteString(tok.Text)
		}
	}
	if sb.String() != source {
		t.Errorf("concatenated tokens = %q, want %q", sb.String(), source)
	}
}

func TestHighlightCode_KeywordIsColored(t *testing.T) {
	t.Parallel()

	lines, err := highlightCode("func main() {}", "go", "github")
	if err != nil {
		t.Fatalf("highlightCode() error = %v", err)
	}
	colored := false
	for _, tok := range lines[0] {
		if tok.Color != "" {
			colored = true
		}
	}
	if !colored {
		t.Error("expected at least one colored token for go source")
	}
}

func TestHighlightCode_UnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	lines, err := highlightCode("anything at all", "no-such-lang", "github")
	if err != nil {
		t.Fatalf("highlightCode() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	var sb strings.Builder
	for _, tok := range lines[0] {
		sb.WriteString(tok.Text)
	}
	if sb.String() != "anything at all" {
		t.Errorf("fallback text = %q", sb.String())
	}
}

func TestHighlightCode_UnknownStyleFallsBack(t *testing.T) {
	t.Parallel()

	if _, err := highlightCode("x = 1", "python", "no-such-style"); err != nil {
		t.Errorf("highlightCode() error = %v, want fallback style", err)
	}
}
