package docx

import (
	"fmt"
	"strings"
)

// Alignment values accepted by w:jc.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "both"
)

// ParagraphProps carries paragraph-level formatting. Zero values mean
// "not set" and are omitted from w:pPr.
type ParagraphProps struct {
	Align             string
	LineSpacing       float64 // multiple of single spacing
	SpaceBeforePt     float64
	SpaceAfterPt      float64
	FirstLineIndentPt float64
	LeftIndentPt      float64
	ShadingFill       string // RRGGBB background fill
}

// Paragraph is a block of runs with shared paragraph properties.
type Paragraph struct {
	Props ParagraphProps
	Runs  []Run
}

// AddRun appends a run to the paragraph.
func (p *Paragraph) AddRun(r Run) {
	p.Runs = append(p.Runs, r)
}

// Field identifies a dynamic field rendered by Word at view time.
type Field int

const (
	FieldNone Field = iota
	FieldPage
	FieldNumPages
)

// Run is a span of text with uniform character formatting, or one of
// the non-text variants: a line break, a page-number field, or an
// inline image.
type Run struct {
	Text   string
	Fonts  RunFonts
	SizePt float64
	Color  string // RRGGBB
	Bold   bool
	Italic bool
	Under  bool
	Strike bool

	Break bool
	Field Field
	Image *ImageRef
}

// ImageRef places a registered media part inline, sized in EMU.
type ImageRef struct {
	RelID     string
	WidthEMU  int64
	HeightEMU int64
}

// Footer holds the single footer paragraph.
type Footer struct {
	Paragraph Paragraph
}

// escapeXML replaces the five characters that must not appear literally
// in XML character data or attribute values.
var escapeXML = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
).Replace

func (p *Paragraph) writeXML(sb *strings.Builder) {
	sb.WriteString("<w:p>")
	p.Props.writeXML(sb)
	for _, r := range p.Runs {
		r.writeXML(sb)
	}
	sb.WriteString("</w:p>")
}

func (pp *ParagraphProps) writeXML(sb *strings.Builder) {
	var props strings.Builder
	if pp.ShadingFill != "" {
		fmt.Fprintf(&props, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, pp.ShadingFill)
	}
	if pp.LineSpacing > 0 || pp.SpaceBeforePt > 0 || pp.SpaceAfterPt > 0 {
		fmt.Fprintf(&props, `<w:spacing w:before="%d" w:after="%d"`,
			TwipsFromPt(pp.SpaceBeforePt), TwipsFromPt(pp.SpaceAfterPt))
		if pp.LineSpacing > 0 {
			fmt.Fprintf(&props, ` w:line="%d" w:lineRule="auto"`, LineSpacingValue(pp.LineSpacing))
		}
		props.WriteString("/>")
	}
	if pp.FirstLineIndentPt > 0 || pp.LeftIndentPt > 0 {
		props.WriteString("<w:ind")
		if pp.LeftIndentPt > 0 {
			fmt.Fprintf(&props, ` w:left="%d"`, TwipsFromPt(pp.LeftIndentPt))
		}
		if pp.FirstLineIndentPt > 0 {
			fmt.Fprintf(&props, ` w:firstLine="%d"`, TwipsFromPt(pp.FirstLineIndentPt))
		}
		props.WriteString("/>")
	}
	if pp.Align != "" {
		fmt.Fprintf(&props, `<w:jc w:val="%s"/>`, pp.Align)
	}
	if props.Len() == 0 {
		return
	}
	sb.WriteString("<w:pPr>")
	sb.WriteString(props.String())
	sb.WriteString("</w:pPr>")
}

func (r *Run) writeXML(sb *strings.Builder) {
	switch {
	case r.Image != nil:
		sb.WriteString("<w:r>")
		r.writeImageXML(sb)
		sb.WriteString("</w:r>")
	case r.Field != FieldNone:
		r.writeFieldXML(sb)
	case r.Break:
		sb.WriteString("<w:r>")
		r.writePropsXML(sb)
		sb.WriteString("<w:br/></w:r>")
	default:
		sb.WriteString("<w:r>")
		r.writePropsXML(sb)
		fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(r.Text))
		sb.WriteString("</w:r>")
	}
}

func (r *Run) writePropsXML(sb *strings.Builder) {
	var props strings.Builder
	if r.Fonts.ASCII != "" || r.Fonts.EastAsian != "" {
		props.WriteString("<w:rFonts")
		if r.Fonts.ASCII != "" {
			fmt.Fprintf(&props, ` w:ascii="%s" w:hAnsi="%s" w:cs="%s"`,
				escapeXML(r.Fonts.ASCII), escapeXML(r.Fonts.ASCII), escapeXML(r.Fonts.ASCII))
		}
		if r.Fonts.EastAsian != "" {
			fmt.Fprintf(&props, ` w:eastAsia="%s"`, escapeXML(r.Fonts.EastAsian))
		}
		props.WriteString("/>")
	}
	if r.Bold {
		props.WriteString("<w:b/>")
	}
	if r.Italic {
		props.WriteString("<w:i/>")
	}
	if r.Strike {
		props.WriteString("<w:strike/>")
	}
	if r.Under {
		props.WriteString(`<w:u w:val="single"/>`)
	}
	if r.Color != "" {
		fmt.Fprintf(&props, `<w:color w:val="%s"/>`, r.Color)
	}
	if r.SizePt > 0 {
		hp := HalfPoints(r.SizePt)
		fmt.Fprintf(&props, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, hp, hp)
	}
	if props.Len() == 0 {
		return
	}
	sb.WriteString("<w:rPr>")
	sb.WriteString(props.String())
	sb.WriteString("</w:rPr>")
}

// writeFieldXML emits the begin/instruction/end run triple that Word
// evaluates as a dynamic field.
func (r *Run) writeFieldXML(sb *strings.Builder) {
	instr := " PAGE "
	if r.Field == FieldNumPages {
		instr = " NUMPAGES "
	}

	sb.WriteString("<w:r>")
	r.writePropsXML(sb)
	sb.WriteString(`<w:fldChar w:fldCharType="begin"/></w:r><w:r>`)
	r.writePropsXML(sb)
	fmt.Fprintf(sb, `<w:instrText xml:space="preserve">%s</w:instrText></w:r><w:r>`, instr)
	r.writePropsXML(sb)
	sb.WriteString(`<w:fldChar w:fldCharType="end"/></w:r>`)
}

func (r *Run) writeImageXML(sb *strings.Builder) {
	img := r.Image
	// Drawing IDs only need to be unique within the document; derive
	// one from the relationship ID's numeric suffix.
	id := strings.TrimPrefix(img.RelID, "rId")
	fmt.Fprintf(sb, `<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%[1]d" cy="%[2]d"/>`+
		`<wp:docPr id="%[3]s" name="Picture %[3]s"/>`+
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
		`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:nvPicPr><pic:cNvPr id="%[3]s" name="Picture %[3]s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%[4]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		img.WidthEMU, img.HeightEMU, id, img.RelID)
}
