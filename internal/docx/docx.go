// Package docx writes WordprocessingML documents.
//
// A DOCX file is a ZIP container holding OOXML parts; the main document
// lives at word/document.xml. This package models only the element
// surface the converter needs (paragraphs, runs, tables, inline images,
// a footer with page-number fields and section geometry) and serializes
// it part by part. It is a writer only; no reading or round-tripping.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Relationship IDs for the fixed parts. Image relationships are
// allocated after these.
const (
	relIDStyles = "rId1"
	relIDFooter = "rId2"

	firstImageRelNum = 3
)

// Section holds page-level geometry in twentieths of a point.
type Section struct {
	PageWidthTw    int
	PageHeightTw   int
	MarginTopTw    int
	MarginBottomTw int
	MarginLeftTw   int
	MarginRightTw  int
}

// RunFonts names the fonts applied per script range.
type RunFonts struct {
	ASCII     string // latin text and digits (w:ascii, w:hAnsi, w:cs)
	EastAsian string // CJK text (w:eastAsia)
}

// image is a media part pending serialization.
type image struct {
	relID string
	name  string
	data  []byte
}

// Document accumulates body elements and produces the DOCX container.
type Document struct {
	section       Section
	defaultFonts  RunFonts
	defaultSizePt float64

	elements []any // *Paragraph or *Table, in body order
	images   []image
	footer   *Footer
}

// NewDocument creates an empty document with the given section geometry
// and default body fonts (used for the Normal style).
func NewDocument(section Section, fonts RunFonts, sizePt float64) *Document {
	return &Document{
		section:       section,
		defaultFonts:  fonts,
		defaultSizePt: sizePt,
	}
}

// AddParagraph appends a paragraph to the body.
func (d *Document) AddParagraph(p *Paragraph) {
	d.elements = append(d.elements, p)
}

// AddTable appends a table to the body.
func (d *Document) AddTable(t *Table) {
	d.elements = append(d.elements, t)
}

// AddImage registers PNG data as a media part and returns the
// relationship ID to reference from an image run.
func (d *Document) AddImage(png []byte) string {
	n := firstImageRelNum + len(d.images)
	relID := fmt.Sprintf("rId%d", n)
	d.images = append(d.images, image{
		relID: relID,
		name:  fmt.Sprintf("image%d.png", len(d.images)+1),
		data:  png,
	})
	return relID
}

// SetFooter installs the page footer. Called at most once, after all
// body elements are known.
func (d *Document) SetFooter(f *Footer) {
	d.footer = f
}

// Bytes serializes the document to a DOCX container.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", d.contentTypesXML()},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", d.documentRelsXML()},
		{"word/styles.xml", d.stylesXML()},
		{"word/document.xml", d.documentXML()},
	}
	if d.footer != nil {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/footer1.xml", d.footerXML()})
	}
	for _, img := range d.images {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + img.name, img.data})
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("creating part %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, fmt.Errorf("writing part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing container: %w", err)
	}
	return buf.Bytes(), nil
}
