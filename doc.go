// Package md2docx converts Markdown documents to Word (DOCX) files.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// The result carries the document bytes (result.DOCX) plus any
// warnings from degraded elements (result.Warnings), such as diagrams
// that fell back to text.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Block scanning: lines are classified into headings, paragraphs,
//     lists, quotes, fenced code, tables, diagrams, and rules.
//  2. Inline resolution: emphasis, underline, strikethrough, inline
//     code, and math markers become non-overlapping styled spans;
//     straight quotes become CJK quote glyphs.
//  3. Rendering: each block is appended to the document with the
//     typography of the active preset; Mermaid diagrams are
//     rasterized via the mermaid CLI with a text fallback.
//
// # Configuration
//
// Typography comes from named presets ("legal", "academic", "report",
// "simple") or an external YAML file:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithPreset("legal"),
//	    md2docx.WithTimeout(time.Minute),
//	)
//
// # Diagram Rendering
//
// Mermaid blocks are rendered with the mmdc command-line tool, looked
// up via the MMDCCMD environment variable, a local node_modules/.bin,
// or PATH. A missing or failing tool is never fatal: the diagram
// degrades to a deterministic text summary.
package md2docx
