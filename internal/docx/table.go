package docx

import (
	"fmt"
	"strings"
)

// Vertical alignment values for w:vAlign.
const (
	VAlignTop    = "top"
	VAlignCenter = "center"
	VAlignBottom = "bottom"
)

// Borders describes the uniform single-line border drawn on all six
// table edges. Width is in eighths of a point.
type Borders struct {
	WidthEighthPt int
	Color         string // RRGGBB
}

// CellMargins holds the interior padding of every cell, in twips.
type CellMargins struct {
	TopTw    int
	BottomTw int
	LeftTw   int
	RightTw  int
}

// Table is a grid of cells with fixed column widths.
type Table struct {
	ColumnWidthsTw []int
	Rows           []TableRow
	Borders        *Borders
	CellMargins    CellMargins
	Align          string
	RowHeightTw    int // minimum row height; 0 leaves it automatic
	VerticalAlign  string
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []TableCell
}

// TableCell holds the cell's block content.
type TableCell struct {
	Paragraphs []*Paragraph
}

// AddRow appends a row built from the given cells.
func (t *Table) AddRow(cells ...TableCell) {
	t.Rows = append(t.Rows, TableRow{Cells: cells})
}

func (t *Table) writeXML(sb *strings.Builder) {
	sb.WriteString("<w:tbl>")
	t.writePropsXML(sb)

	sb.WriteString("<w:tblGrid>")
	for _, w := range t.ColumnWidthsTw {
		fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, w)
	}
	sb.WriteString("</w:tblGrid>")

	for _, row := range t.Rows {
		t.writeRowXML(sb, row)
	}
	sb.WriteString("</w:tbl>")
}

func (t *Table) writePropsXML(sb *strings.Builder) {
	sb.WriteString("<w:tblPr>")

	total := 0
	for _, w := range t.ColumnWidthsTw {
		total += w
	}
	fmt.Fprintf(sb, `<w:tblW w:w="%d" w:type="dxa"/>`, total)

	if t.Align != "" {
		fmt.Fprintf(sb, `<w:jc w:val="%s"/>`, t.Align)
	}
	if t.Borders != nil {
		edge := fmt.Sprintf(`w:val="single" w:sz="%d" w:space="0" w:color="%s"`,
			t.Borders.WidthEighthPt, t.Borders.Color)
		fmt.Fprintf(sb, "<w:tblBorders>"+
			"<w:top %[1]s/><w:left %[1]s/><w:bottom %[1]s/><w:right %[1]s/>"+
			"<w:insideH %[1]s/><w:insideV %[1]s/>"+
			"</w:tblBorders>", edge)
	}
	m := t.CellMargins
	if m != (CellMargins{}) {
		fmt.Fprintf(sb, `<w:tblCellMar>`+
			`<w:top w:w="%d" w:type="dxa"/><w:left w:w="%d" w:type="dxa"/>`+
			`<w:bottom w:w="%d" w:type="dxa"/><w:right w:w="%d" w:type="dxa"/>`+
			`</w:tblCellMar>`, m.TopTw, m.LeftTw, m.BottomTw, m.RightTw)
	}
	sb.WriteString(`<w:tblLayout w:type="fixed"/>`)
	sb.WriteString("</w:tblPr>")
}

func (t *Table) writeRowXML(sb *strings.Builder, row TableRow) {
	sb.WriteString("<w:tr>")
	if t.RowHeightTw > 0 {
		fmt.Fprintf(sb, `<w:trPr><w:trHeight w:val="%d" w:hRule="atLeast"/></w:trPr>`, t.RowHeightTw)
	}
	for i, cell := range row.Cells {
		sb.WriteString("<w:tc><w:tcPr>")
		if i < len(t.ColumnWidthsTw) {
			fmt.Fprintf(sb, `<w:tcW w:w="%d" w:type="dxa"/>`, t.ColumnWidthsTw[i])
		}
		if t.VerticalAlign != "" {
			fmt.Fprintf(sb, `<w:vAlign w:val="%s"/>`, t.VerticalAlign)
		}
		sb.WriteString("</w:tcPr>")
		// A cell must contain at least one paragraph to be valid.
		if len(cell.Paragraphs) == 0 {
			sb.WriteString("<w:p/>")
		}
		for _, p := range cell.Paragraphs {
			p.writeXML(sb)
		}
		sb.WriteString("</w:tc>")
	}
	sb.WriteString("</w:tr>")
}
