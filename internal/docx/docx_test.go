package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func testDocument() *Document {
	section := Section{
		PageWidthTw:    TwipsFromCm(21.0),
		PageHeightTw:   TwipsFromCm(29.7),
		MarginTopTw:    TwipsFromCm(2.54),
		MarginBottomTw: TwipsFromCm(2.54),
		MarginLeftTw:   TwipsFromCm(3.18),
		MarginRightTw:  TwipsFromCm(3.18),
	}
	fonts := RunFonts{ASCII: "Times New Roman", EastAsian: "SimSun"}
	return NewDocument(section, fonts, 12)
}

func readParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("opening container: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening part %s: %v", f.Name, err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatalf("reading part %s: %v", f.Name, err)
		}
		rc.Close()
		parts[f.Name] = buf.String()
	}
	return parts
}

func TestBytes_ContainerParts(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	p := &Paragraph{}
	p.AddRun(Run{Text: "hello", SizePt: 12})
	doc.AddParagraph(p)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	parts := readParts(t, data)

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/document.xml",
	} {
		if _, ok := parts[want]; !ok {
			t.Errorf("missing part %s", want)
		}
	}
	if _, ok := parts["word/footer1.xml"]; ok {
		t.Error("footer part present without SetFooter")
	}
}

func TestBytes_FooterAndImageParts(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	relID := doc.AddImage([]byte("\x89PNG\r\n\x1a\nfake"))
	if relID != "rId3" {
		t.Errorf("first image relID = %q, want rId3", relID)
	}

	p := &Paragraph{}
	p.AddRun(Run{Image: &ImageRef{RelID: relID, WidthEMU: 360000, HeightEMU: 180000}})
	doc.AddParagraph(p)

	footer := &Footer{}
	footer.Paragraph.AddRun(Run{Field: FieldPage, SizePt: 10.5})
	footer.Paragraph.AddRun(Run{Text: "/", SizePt: 10.5})
	footer.Paragraph.AddRun(Run{Field: FieldNumPages, SizePt: 10.5})
	doc.SetFooter(footer)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	parts := readParts(t, data)

	if _, ok := parts["word/media/image1.png"]; !ok {
		t.Error("missing media part")
	}
	ftr, ok := parts["word/footer1.xml"]
	if !ok {
		t.Fatal("missing footer part")
	}
	for _, want := range []string{" PAGE ", " NUMPAGES ", `w:fldCharType="begin"`, `w:fldCharType="end"`} {
		if !strings.Contains(ftr, want) {
			t.Errorf("footer missing %q", want)
		}
	}

	rels := parts["word/_rels/document.xml.rels"]
	if !strings.Contains(rels, `Target="media/image1.png"`) {
		t.Error("document rels missing image relationship")
	}
	if !strings.Contains(rels, `Target="footer1.xml"`) {
		t.Error("document rels missing footer relationship")
	}

	body := parts["word/document.xml"]
	if !strings.Contains(body, `<w:footerReference w:type="default" r:id="rId2"/>`) {
		t.Error("section properties missing footer reference")
	}
	if !strings.Contains(body, `r:embed="rId3"`) {
		t.Error("image run missing blip reference")
	}

	ct := parts["[Content_Types].xml"]
	if !strings.Contains(ct, `Extension="png"`) {
		t.Error("content types missing png default")
	}
}

func TestParagraph_XMLEscaping(t *testing.T) {
	t.Parallel()

	p := &Paragraph{}
	p.AddRun(Run{Text: `a < b & "c" > 'd'`})
	var sb strings.Builder
	p.writeXML(&sb)

	got := sb.String()
	if !strings.Contains(got, "a &lt; b &amp; &quot;c&quot; &gt; &apos;d&apos;") {
		t.Errorf("unescaped text in %q", got)
	}
}

func TestParagraphProps_XML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		props ParagraphProps
		want  []string
	}{
		{
			name:  "alignment only",
			props: ParagraphProps{Align: AlignCenter},
			want:  []string{`<w:jc w:val="center"/>`},
		},
		{
			name:  "spacing with line multiple",
			props: ParagraphProps{LineSpacing: 1.5, SpaceBeforePt: 6, SpaceAfterPt: 6},
			want:  []string{`<w:spacing w:before="120" w:after="120" w:line="360" w:lineRule="auto"/>`},
		},
		{
			name:  "first line indent",
			props: ParagraphProps{FirstLineIndentPt: 24},
			want:  []string{`<w:ind w:firstLine="480"/>`},
		},
		{
			name:  "shading fill",
			props: ParagraphProps{ShadingFill: "EAEAEA"},
			want:  []string{`<w:shd w:val="clear" w:color="auto" w:fill="EAEAEA"/>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Paragraph{Props: tt.props}
			p.AddRun(Run{Text: "x"})
			var sb strings.Builder
			p.writeXML(&sb)
			for _, want := range tt.want {
				if !strings.Contains(sb.String(), want) {
					t.Errorf("missing %q in %q", want, sb.String())
				}
			}
		})
	}
}

func TestRun_PropsXML(t *testing.T) {
	t.Parallel()

	r := Run{
		Text:   "x",
		Fonts:  RunFonts{ASCII: "Times New Roman", EastAsian: "SimSun"},
		SizePt: 10.5,
		Color:  "00008B",
		Bold:   true,
		Italic: true,
		Strike: true,
		Under:  true,
	}
	var sb strings.Builder
	r.writeXML(&sb)

	got := sb.String()
	for _, want := range []string{
		`w:ascii="Times New Roman"`,
		`w:eastAsia="SimSun"`,
		"<w:b/>", "<w:i/>", "<w:strike/>", `<w:u w:val="single"/>`,
		`<w:color w:val="00008B"/>`,
		`<w:sz w:val="21"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestRun_Break(t *testing.T) {
	t.Parallel()

	r := Run{Break: true}
	var sb strings.Builder
	r.writeXML(&sb)
	if !strings.Contains(sb.String(), "<w:br/>") {
		t.Errorf("missing break in %q", sb.String())
	}
	if strings.Contains(sb.String(), "<w:t") {
		t.Errorf("break run must not carry text: %q", sb.String())
	}
}

func TestTable_XML(t *testing.T) {
	t.Parallel()

	cell := func(text string) TableCell {
		p := &Paragraph{}
		p.AddRun(Run{Text: text})
		return TableCell{Paragraphs: []*Paragraph{p}}
	}

	tbl := &Table{
		ColumnWidthsTw: []int{2000, 3000},
		Borders:        &Borders{WidthEighthPt: 4, Color: "000000"},
		CellMargins:    CellMargins{TopTw: 57, BottomTw: 57, LeftTw: 108, RightTw: 108},
		Align:          AlignCenter,
		RowHeightTw:    TwipsFromCm(0.8),
		VerticalAlign:  VAlignCenter,
	}
	tbl.AddRow(cell("a"), cell("b"))
	tbl.AddRow(cell("c"), TableCell{})

	var sb strings.Builder
	tbl.writeXML(&sb)
	got := sb.String()

	for _, want := range []string{
		`<w:tblW w:w="5000" w:type="dxa"/>`,
		`<w:jc w:val="center"/>`,
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="000000"/>`,
		`<w:gridCol w:w="2000"/>`,
		`<w:trHeight w:val="454" w:hRule="atLeast"/>`,
		`<w:tcW w:w="2000" w:type="dxa"/>`,
		`<w:vAlign w:val="center"/>`,
		`<w:tblLayout w:type="fixed"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q", want)
		}
	}
	// The empty cell still needs a paragraph.
	if !strings.Contains(got, "<w:p/>") {
		t.Error("empty cell missing placeholder paragraph")
	}
}

func TestUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"TwipsFromCm A4 width", TwipsFromCm(21.0), 11906},
		{"TwipsFromCm margin", TwipsFromCm(2.54), 1440},
		{"TwipsFromPt", TwipsFromPt(12), 240},
		{"HalfPoints", HalfPoints(10.5), 21},
		{"LineSpacingValue", LineSpacingValue(1.5), 360},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if got := EMUFromCm(1); got != 360000 {
		t.Errorf("EMUFromCm(1) = %d, want 360000", got)
	}
}
