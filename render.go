package md2docx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/preset"
)

// renderer walks a Block list and appends styled units to the output
// document. All typographic parameters come from the Config; nothing
// is mutated during a run, so one Config serves concurrent renderers.
type renderer struct {
	cfg      *preset.Config
	doc      *docx.Document
	diagrams *diagramRenderer

	// imageDir receives side-channel image files. keepImages marks
	// them as deliverables; otherwise they are cleaned up after
	// embedding.
	imageDir   string
	keepImages bool
	imageSeq   int

	warnings []Warning
	images   []string
}

func newRenderer(cfg *preset.Config, imageDir string, keepImages bool) *renderer {
	section := docx.Section{
		PageWidthTw:    docx.TwipsFromCm(cfg.Page.WidthCm),
		PageHeightTw:   docx.TwipsFromCm(cfg.Page.HeightCm),
		MarginTopTw:    docx.TwipsFromCm(cfg.Page.MarginTopCm),
		MarginBottomTw: docx.TwipsFromCm(cfg.Page.MarginBottomCm),
		MarginLeftTw:   docx.TwipsFromCm(cfg.Page.MarginLeftCm),
		MarginRightTw:  docx.TwipsFromCm(cfg.Page.MarginRightCm),
	}
	fonts := docx.RunFonts{ASCII: cfg.Fonts.ASCII, EastAsian: cfg.Fonts.EastAsian}
	return &renderer{
		cfg:        cfg,
		doc:        docx.NewDocument(section, fonts, cfg.Fonts.SizePt),
		diagrams:   &diagramRenderer{cfg: cfg.Diagram},
		imageDir:   imageDir,
		keepImages: keepImages,
	}
}

// renderAll appends every block, then the footer. A failure inside a
// single block is confined to that block: the panic is recovered and
// recorded as a warning so one bad element never aborts the document.
func (r *renderer) renderAll(ctx context.Context, blocks []Block) {
	for _, b := range blocks {
		r.renderBlock(ctx, b)
	}
	if r.cfg.PageNumber.Enabled {
		r.renderFooter()
	}
}

func (r *renderer) renderBlock(ctx context.Context, b Block) {
	defer func() {
		if rec := recover(); rec != nil {
			r.warn(b.Kind.String(), fmt.Errorf("rendering %s block: %v", b.Kind, rec))
		}
	}()

	switch b.Kind {
	case KindHeading:
		r.renderHeading(b)
	case KindParagraph:
		r.renderParagraph(b.Text)
	case KindBulletItem:
		r.renderBullet(b.Text)
	case KindNumberedItem:
		r.renderParagraph(b.Text)
	case KindTaskItem:
		r.renderTask(b)
	case KindQuote:
		r.renderQuote(b.Lines)
	case KindCodeBlock:
		r.renderCode(b)
	case KindTable:
		r.renderTable(b)
	case KindDiagram:
		r.renderDiagram(ctx, strings.Join(b.Lines, "\n"))
	case KindRule:
		r.renderRule()
	}
}

func (r *renderer) warn(stage string, err error) {
	r.warnings = append(r.warnings, Warning{Stage: stage, Err: err})
}

// convert applies straight-quote substitution when enabled.
func (r *renderer) convert(text string) string {
	if r.cfg.Quotes.Convert {
		return convertQuotes(text)
	}
	return text
}

// runStyle is the base character style spans inherit before their own
// format flags apply.
type runStyle struct {
	sizePt float64
	color  string
	bold   bool
}

func (r *renderer) bodyStyle() runStyle {
	return runStyle{sizePt: r.cfg.Fonts.SizePt, color: preset.NormalizeColor(r.cfg.Fonts.Color)}
}

// spanRuns resolves inline markers in text and builds one run per
// span. <br> tags become in-paragraph breaks. Code and math spans use
// their fixed styles regardless of surrounding markers.
func (r *renderer) spanRuns(text string, base runStyle) []docx.Run {
	bodyFonts := docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian}

	var runs []docx.Run
	for i, segment := range splitLineBreaks(text) {
		if i > 0 {
			runs = append(runs, docx.Run{Break: true})
		}
		for _, span := range resolveSpans(segment) {
			switch {
			case span.Format.Has(FormatCode):
				ic := r.cfg.InlineCode
				runs = append(runs, docx.Run{
					Text:   span.Text,
					Fonts:  docx.RunFonts{ASCII: ic.Font, EastAsian: ic.Font},
					SizePt: ic.SizePt,
					Color:  preset.NormalizeColor(ic.Color),
				})
			case span.Format.Has(FormatMath):
				m := r.cfg.Math
				runs = append(runs, docx.Run{
					Text:   span.Text,
					Fonts:  docx.RunFonts{ASCII: m.Font, EastAsian: m.Font},
					SizePt: m.SizePt,
					Color:  preset.NormalizeColor(m.Color),
					Italic: m.Italic,
				})
			default:
				runs = append(runs, docx.Run{
					Text:   span.Text,
					Fonts:  bodyFonts,
					SizePt: base.sizePt,
					Color:  base.color,
					Bold:   base.bold || span.Format.Has(FormatBold),
					Italic: span.Format.Has(FormatItalic),
					Under:  span.Format.Has(FormatUnderline),
					Strike: span.Format.Has(FormatStrike),
				})
			}
		}
	}
	return runs
}

// alignValue maps a preset alignment name to its w:jc value.
func alignValue(name string) string {
	if name == preset.AlignJustify {
		return docx.AlignJustify
	}
	return name
}

func (r *renderer) bodyProps() docx.ParagraphProps {
	return docx.ParagraphProps{
		Align:             alignValue(r.cfg.Paragraph.Align),
		LineSpacing:       r.cfg.Paragraph.LineSpacing,
		FirstLineIndentPt: r.cfg.Paragraph.FirstLineIndentPt,
	}
}

func (r *renderer) renderHeading(b Block) {
	if b.SpacerBefore {
		r.doc.AddParagraph(&docx.Paragraph{})
	}

	style := r.cfg.Headings.Level(b.Level)
	p := &docx.Paragraph{
		Props: docx.ParagraphProps{
			Align:             alignValue(style.Align),
			LineSpacing:       r.cfg.Paragraph.LineSpacing,
			SpaceBeforePt:     style.SpaceBeforePt,
			SpaceAfterPt:      style.SpaceAfterPt,
			FirstLineIndentPt: style.IndentPt,
		},
	}
	base := runStyle{sizePt: style.SizePt, color: preset.NormalizeColor(r.cfg.Fonts.Color), bold: style.Bold}
	p.Runs = r.spanRuns(r.convert(b.Text), base)
	r.doc.AddParagraph(p)
}

func (r *renderer) renderParagraph(text string) {
	p := &docx.Paragraph{Props: r.bodyProps()}
	p.Runs = r.spanRuns(r.convert(text), r.bodyStyle())
	r.doc.AddParagraph(p)
}

func (r *renderer) renderBullet(text string) {
	p := &docx.Paragraph{Props: r.bodyProps()}
	p.AddRun(r.markerRun(r.cfg.Lists.BulletMarker + " "))
	p.Runs = append(p.Runs, r.spanRuns(r.convert(text), r.bodyStyle())...)
	r.doc.AddParagraph(p)
}

func (r *renderer) renderTask(b Block) {
	marker := r.cfg.Lists.TaskUnchecked
	if b.Checked {
		marker = r.cfg.Lists.TaskChecked
	}
	p := &docx.Paragraph{Props: r.bodyProps()}
	p.AddRun(r.markerRun(marker + " "))
	p.Runs = append(p.Runs, r.spanRuns(r.convert(b.Text), r.bodyStyle())...)
	r.doc.AddParagraph(p)
}

func (r *renderer) markerRun(text string) docx.Run {
	return docx.Run{
		Text:   text,
		Fonts:  docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian},
		SizePt: r.cfg.Fonts.SizePt,
		Color:  preset.NormalizeColor(r.cfg.Fonts.Color),
	}
}

// Quote-internal list markers keep an extra indent so nested lists
// read as such inside the shaded block.
var (
	quoteBulletPrefix = "    •  "
)

func (r *renderer) renderQuote(lines []string) {
	q := r.cfg.Quote
	props := docx.ParagraphProps{
		Align:        docx.AlignJustify,
		LineSpacing:  q.LineSpacing,
		LeftIndentPt: q.LeftIndentPt,
		ShadingFill:  preset.NormalizeColor(q.Background),
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			r.doc.AddParagraph(&docx.Paragraph{Props: docx.ParagraphProps{LineSpacing: q.LineSpacing}})
			continue
		}

		p := &docx.Paragraph{Props: props}
		base := runStyle{sizePt: q.SizePt, color: preset.NormalizeColor(r.cfg.Fonts.Color)}

		rest := line
		if checked, text, ok := matchTaskItem(rest); ok {
			marker := r.cfg.Lists.TaskUnchecked
			if checked {
				marker = r.cfg.Lists.TaskChecked
			}
			p.AddRun(docx.Run{Text: "    " + marker + " ", SizePt: q.SizePt,
				Fonts: docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian}})
			rest = text
		} else if strings.HasPrefix(rest, "- ") || strings.HasPrefix(rest, "* ") || strings.HasPrefix(rest, "+ ") {
			p.AddRun(docx.Run{Text: quoteBulletPrefix, SizePt: q.SizePt,
				Fonts: docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian}})
			rest = strings.TrimSpace(rest[2:])
		} else if m := numberedRegex.FindString(rest); m != "" {
			p.AddRun(docx.Run{Text: "    " + strings.TrimSpace(m) + " ", SizePt: q.SizePt,
				Fonts: docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian}})
			rest = strings.TrimSpace(rest[len(m):])
		}

		p.Runs = append(p.Runs, r.spanRuns(r.convert(rest), base)...)
		r.doc.AddParagraph(p)
	}
}

func (r *renderer) renderCode(b Block) {
	cb := r.cfg.CodeBlock

	if b.Language != "" {
		label := &docx.Paragraph{}
		label.AddRun(docx.Run{
			Text:   "[" + b.Language + "]",
			Fonts:  docx.RunFonts{ASCII: cb.Label.Font, EastAsian: cb.Label.Font},
			SizePt: cb.Label.SizePt,
			Color:  preset.NormalizeColor(cb.Label.Color),
		})
		r.doc.AddParagraph(label)
	}

	content := cb.Content
	props := docx.ParagraphProps{
		LineSpacing:  content.LineSpacing,
		LeftIndentPt: content.LeftIndentPt,
	}
	fonts := docx.RunFonts{ASCII: content.Font, EastAsian: content.Font}
	defaultColor := preset.NormalizeColor(content.Color)

	if cb.Highlight {
		if lines, err := highlightCode(strings.Join(b.Lines, "\n"), b.Language, cb.Style); err == nil {
			for _, tokens := range lines {
				p := &docx.Paragraph{Props: props}
				if len(tokens) == 0 {
					p.AddRun(docx.Run{Text: " ", Fonts: fonts, SizePt: content.SizePt, Color: defaultColor})
				}
				for _, tok := range tokens {
					color := tok.Color
					if color == "" {
						color = defaultColor
					}
					p.AddRun(docx.Run{
						Text:   tok.Text,
						Fonts:  fonts,
						SizePt: content.SizePt,
						Color:  color,
						Bold:   tok.Bold,
						Italic: tok.Italic,
					})
				}
				r.doc.AddParagraph(p)
			}
			return
		} else {
			r.warn("highlight", err)
		}
	}

	for _, line := range b.Lines {
		if line == "" {
			line = " "
		}
		p := &docx.Paragraph{Props: props}
		p.AddRun(docx.Run{Text: line, Fonts: fonts, SizePt: content.SizePt, Color: defaultColor})
		r.doc.AddParagraph(p)
	}
}

func (r *renderer) renderTable(b Block) {
	if b.Columns == 0 || len(b.Rows) == 0 {
		return
	}

	tc := r.cfg.Table
	totalTw := docx.TwipsFromCm(r.cfg.Page.PrintableWidthCm())
	colTw := totalTw / b.Columns
	widths := make([]int, b.Columns)
	for i := range widths {
		widths[i] = colTw
	}

	tbl := &docx.Table{
		ColumnWidthsTw: widths,
		CellMargins: docx.CellMargins{
			TopTw:    tc.CellMargin.Top,
			BottomTw: tc.CellMargin.Bottom,
			LeftTw:   tc.CellMargin.Left,
			RightTw:  tc.CellMargin.Right,
		},
		Align:         tc.Alignment,
		RowHeightTw:   docx.TwipsFromCm(tc.RowHeightCm),
		VerticalAlign: tc.VerticalAlign,
	}
	if tc.Border {
		tbl.Borders = &docx.Borders{
			WidthEighthPt: tc.BorderWidth,
			Color:         preset.NormalizeColor(tc.BorderColor),
		}
	}

	cellProps := docx.ParagraphProps{Align: docx.AlignCenter, LineSpacing: tc.LineSpacing}
	for rowIdx, row := range b.Rows {
		isHeader := rowIdx == 0
		style := tc.Body
		if isHeader {
			style = tc.Header
		}
		fonts := docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: style.Font}

		cells := make([]docx.TableCell, len(row))
		for cellIdx, text := range row {
			p := &docx.Paragraph{Props: cellProps}
			base := runStyle{sizePt: style.SizePt, color: preset.NormalizeColor(style.Color), bold: isHeader && style.Bold}
			runs := r.spanRuns(r.convert(text), base)
			for i := range runs {
				// Cell text keeps the cell fonts unless the span set a
				// fixed code or math style.
				if runs[i].Fonts == (docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian}) {
					runs[i].Fonts = fonts
				}
			}
			p.Runs = runs
			cells[cellIdx] = docx.TableCell{Paragraphs: []*docx.Paragraph{p}}
		}
		tbl.AddRow(cells...)
	}
	r.doc.AddTable(tbl)
}

// renderDiagram rasterizes diagram source via the external tool and
// embeds the image; on any failure it degrades to a text summary and
// records a warning. Never fatal.
func (r *renderer) renderDiagram(ctx context.Context, src string) {
	src = sanitizeDiagramSource(src)

	if err := r.embedDiagramImage(ctx, src); err != nil {
		r.warn("diagram", err)
		r.renderFallback(fallbackText(src, r.cfg.Diagram.Labels))
	}
}

func (r *renderer) embedDiagramImage(ctx context.Context, src string) error {
	dir := r.imageDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "md2docx-diagrams-")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDiagramRender, err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	r.imageSeq++
	pngPath := filepath.Join(dir, fmt.Sprintf("diagram-%d.png", r.imageSeq))

	if err := r.diagrams.Render(ctx, src, pngPath); err != nil {
		return err
	}

	data, err := os.ReadFile(pngPath)
	if err != nil {
		return fmt.Errorf("%w: reading rendered image: %v", ErrDiagramRender, err)
	}

	displayCm := displayWidthCm(r.cfg.Page, r.cfg.Image)
	if shrunk, err := downsamplePNG(data, displayCm, r.cfg.Image.TargetDPI); err == nil {
		data = shrunk
		if r.keepImages {
			if werr := os.WriteFile(pngPath, shrunk, 0o644); werr != nil {
				r.warn("image", fmt.Errorf("rewriting downsampled image: %w", werr))
			}
		}
	} else {
		r.warn("image", err)
	}

	widthEMU, heightEMU, err := imageExtentEMU(data, displayCm)
	if err != nil {
		return err
	}

	relID := r.doc.AddImage(data)
	p := &docx.Paragraph{Props: docx.ParagraphProps{Align: docx.AlignCenter}}
	p.AddRun(docx.Run{Image: &docx.ImageRef{RelID: relID, WidthEMU: widthEMU, HeightEMU: heightEMU}})
	r.doc.AddParagraph(p)

	if r.keepImages {
		r.images = append(r.images, pngPath)
	}
	return nil
}

func (r *renderer) renderFallback(fb diagramFallback) {
	p := &docx.Paragraph{Props: r.bodyProps()}
	base := r.bodyStyle()
	p.AddRun(docx.Run{
		Text:   fb.Title,
		Fonts:  docx.RunFonts{ASCII: r.cfg.Fonts.ASCII, EastAsian: r.cfg.Fonts.EastAsian},
		SizePt: base.sizePt,
		Color:  base.color,
		Bold:   true,
	})
	for _, line := range fb.Lines {
		p.AddRun(docx.Run{Break: true})
		p.AddRun(r.markerRun(line))
	}
	r.doc.AddParagraph(p)
}

func (r *renderer) renderRule() {
	rs := r.cfg.Rule
	p := &docx.Paragraph{Props: docx.ParagraphProps{Align: alignValue(rs.Align)}}
	p.AddRun(docx.Run{
		Text:   strings.Repeat(rs.Character, rs.Repeat),
		Fonts:  docx.RunFonts{ASCII: rs.Font, EastAsian: rs.Font},
		SizePt: rs.SizePt,
		Color:  preset.NormalizeColor(rs.Color),
	})
	r.doc.AddParagraph(p)
}

// renderFooter installs the page-number footer. Format "1/x" renders
// as current page, separator, total pages; each character is optional.
func (r *renderer) renderFooter() {
	pn := r.cfg.PageNumber
	fonts := docx.RunFonts{ASCII: pn.Font, EastAsian: pn.Font}

	footer := &docx.Footer{}
	footer.Paragraph.Props = docx.ParagraphProps{Align: alignValue(pn.Position)}
	for _, ch := range pn.Format {
		run := docx.Run{Fonts: fonts, SizePt: pn.SizePt}
		switch ch {
		case '1':
			run.Field = docx.FieldPage
		case 'x', 'X':
			run.Field = docx.FieldNumPages
		default:
			run.Text = string(ch)
		}
		footer.Paragraph.AddRun(run)
	}
	r.doc.SetFooter(footer)
}
