package md2docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// documentXML extracts word/document.xml from a serialized document.
func documentXML(t *testing.T, docx []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("opening document archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening word/document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading word/document.xml: %v", err)
		}
		return string(data)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestNewConverter_Defaults(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if got := c.PresetName(); got != "legal" {
		t.Errorf("PresetName() = %q, want %q", got, "legal")
	}
}

func TestNewConverter_UnknownPreset(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithPreset("no-such-preset"))
	if err == nil {
		t.Fatal("NewConverter(WithPreset(unknown)) expected error, got nil")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("WithTimeout(0) expected panic, got none")
		}
	}()
	WithTimeout(0)
}

func TestConvert_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	for _, md := range []string{"", "   \n\t\n"} {
		_, err := c.Convert(context.Background(), Input{Markdown: md})
		if !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("Convert(%q) error = %v, want ErrEmptyMarkdown", md, err)
		}
	}
}

func TestConvert_BasicDocument(t *testing.T) {
	t.Parallel()

	markdown := strings.Join([]string{
		"# 合同标题",
		"",
		"He said \"hi\" and left. This has **bold text** inline.",
		"",
		"| Item | Price |",
		"|------|-------|",
		"| Tea  | 12    |",
		"",
		"---",
		"",
		"- [x] done item",
		"",
		"> a quoted line",
		"",
		"```go",
		"x := 1",
		"```",
	}, "\n")

	c, err := NewConverter(WithTimeout(30 * time.Second))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Convert() warnings = %v, want none", result.Warnings)
	}

	doc := documentXML(t, result.DOCX)

	wantFragments := []string{
		"合同标题",      // heading text survives
		"“hi”",      // straight quotes converted
		"bold text", // inline content present
		"<w:tbl>",   // pipe table rendered as a table
		"─",         // horizontal rule glyph
		"☑",         // checked task marker
		"a quoted line",
		"x := 1", // code fence content
	}
	for _, want := range wantFragments {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}

	if strings.Contains(doc, "**") {
		t.Error("document.xml contains raw ** markers; inline formatting leaked")
	}
}

func TestConvert_DiagramFallback(t *testing.T) {
	// Forces the diagram tool to fail so the textual fallback kicks in.
	t.Setenv(mmdcEnvVar, "/bin/false")

	markdown := strings.Join([]string{
		"# Flow",
		"",
		"```mermaid",
		"graph TD",
		`    A["Start"] --> B["End"]`,
		"```",
	}, "\n")

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	result, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("Convert() warnings = %v, want exactly one", result.Warnings)
	}
	w := result.Warnings[0]
	if w.Stage != "diagram" {
		t.Errorf("warning stage = %q, want %q", w.Stage, "diagram")
	}
	if !errors.Is(w.Err, ErrDiagramRender) {
		t.Errorf("warning err = %v, want ErrDiagramRender", w.Err)
	}

	doc := documentXML(t, result.DOCX)
	for _, want := range []string{"Start", "End"} {
		if !strings.Contains(doc, want) {
			t.Errorf("fallback text missing %q", want)
		}
	}
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(inputPath, []byte("# Notes\n\nSome body text.\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	result, err := c.ConvertFile(context.Background(), inputPath, "")
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}
	if len(result.DOCX) == 0 {
		t.Error("ConvertFile() returned empty document")
	}

	outPath := filepath.Join(dir, "notes.docx")
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("default output %s not written: %v", outPath, err)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	t.Parallel()

	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	_, err = c.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"), "")
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("ConvertFile(missing) error = %v, want ErrReadInput", err)
	}
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := ResolveWorkers(3); got != 3 {
		t.Errorf("ResolveWorkers(3) = %d, want 3", got)
	}

	got := ResolveWorkers(0)
	if got < MinWorkers || got > MaxWorkers {
		t.Errorf("ResolveWorkers(0) = %d, want within [%d, %d]", got, MinWorkers, MaxWorkers)
	}
}
