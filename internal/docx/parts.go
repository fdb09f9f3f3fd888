package docx

import (
	"fmt"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const wordMLNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`

const rootRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func (d *Document) contentTypesXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	if len(d.images) > 0 {
		sb.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	}
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	if d.footer != nil {
		sb.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	}
	sb.WriteString(`</Types>`)
	return []byte(sb.String())
}

func (d *Document) documentRelsXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	fmt.Fprintf(&sb, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`, relIDStyles)
	if d.footer != nil {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`, relIDFooter)
	}
	for _, img := range d.images {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`, img.relID, img.name)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

// stylesXML emits a minimal styles part: document defaults plus the
// Normal style carrying the body fonts and size.
func (d *Document) stylesXML() []byte {
	hp := HalfPoints(d.defaultSizePt)
	var fonts strings.Builder
	fonts.WriteString("<w:rFonts")
	if d.defaultFonts.ASCII != "" {
		fmt.Fprintf(&fonts, ` w:ascii="%s" w:hAnsi="%s" w:cs="%s"`,
			escapeXML(d.defaultFonts.ASCII), escapeXML(d.defaultFonts.ASCII), escapeXML(d.defaultFonts.ASCII))
	}
	if d.defaultFonts.EastAsian != "" {
		fmt.Fprintf(&fonts, ` w:eastAsia="%s"`, escapeXML(d.defaultFonts.EastAsian))
	}
	fonts.WriteString("/>")

	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<w:styles %s>`, wordMLNamespaces)
	fmt.Fprintf(&sb, `<w:docDefaults><w:rPrDefault><w:rPr>%s<w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:rPrDefault>`+
		`<w:pPrDefault><w:pPr/></w:pPrDefault></w:docDefaults>`, fonts.String(), hp, hp)
	fmt.Fprintf(&sb, `<w:style w:type="paragraph" w:default="1" w:styleId="Normal">`+
		`<w:name w:val="Normal"/><w:qFormat/>`+
		`<w:rPr>%s<w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr></w:style>`, fonts.String(), hp, hp)
	sb.WriteString(`</w:styles>`)
	return []byte(sb.String())
}

func (d *Document) documentXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<w:document %s><w:body>`, wordMLNamespaces)

	for _, el := range d.elements {
		switch e := el.(type) {
		case *Paragraph:
			e.writeXML(&sb)
		case *Table:
			e.writeXML(&sb)
		}
	}

	d.writeSectPrXML(&sb)
	sb.WriteString(`</w:body></w:document>`)
	return []byte(sb.String())
}

func (d *Document) writeSectPrXML(sb *strings.Builder) {
	s := d.section
	sb.WriteString("<w:sectPr>")
	if d.footer != nil {
		fmt.Fprintf(sb, `<w:footerReference w:type="default" r:id="%s"/>`, relIDFooter)
	}
	fmt.Fprintf(sb, `<w:pgSz w:w="%d" w:h="%d"/>`, s.PageWidthTw, s.PageHeightTw)
	fmt.Fprintf(sb, `<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>`,
		s.MarginTopTw, s.MarginRightTw, s.MarginBottomTw, s.MarginLeftTw)
	sb.WriteString("</w:sectPr>")
}

func (d *Document) footerXML() []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	fmt.Fprintf(&sb, `<w:ftr %s>`, wordMLNamespaces)
	d.footer.Paragraph.writeXML(&sb)
	sb.WriteString(`</w:ftr>`)
	return []byte(sb.String())
}
