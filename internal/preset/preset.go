// Package preset holds the typographic configuration applied during
// rendering: page geometry, fonts per role, heading styles, list markers,
// table and code-block styling. A Config is immutable once loaded and is
// passed explicitly into every rendering call.
package preset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for preset operations.
var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrEmptyName      = errors.New("preset name cannot be empty")
	ErrPresetParse    = errors.New("failed to parse preset")
	ErrInvalidAlign   = errors.New("invalid alignment")
	ErrInvalidColor   = errors.New("invalid color")
	ErrInvalidRatio   = errors.New("invalid ratio")
)

// Alignment constants accepted in preset files.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Config is a named bundle of layout and typography values.
type Config struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Page       Page            `yaml:"page"`
	Fonts      Fonts           `yaml:"fonts"`
	Headings   Headings        `yaml:"headings"`
	Paragraph  Paragraph       `yaml:"paragraph"`
	Quote      QuoteStyle      `yaml:"quote"`
	Lists      Lists           `yaml:"lists"`
	Table      Table           `yaml:"table"`
	CodeBlock  CodeBlock       `yaml:"codeBlock"`
	InlineCode RunStyle        `yaml:"inlineCode"`
	Math       MathStyle       `yaml:"math"`
	Rule       RuleStyle       `yaml:"horizontalRule"`
	PageNumber PageNumber      `yaml:"pageNumber"`
	Quotes     QuoteConversion `yaml:"quotes"`
	Image      Image           `yaml:"image"`
	Diagram    Diagram         `yaml:"diagram"`
}

// Page defines page size and margins in centimeters.
type Page struct {
	WidthCm        float64 `yaml:"widthCm"`
	HeightCm       float64 `yaml:"heightCm"`
	MarginTopCm    float64 `yaml:"marginTopCm"`
	MarginBottomCm float64 `yaml:"marginBottomCm"`
	MarginLeftCm   float64 `yaml:"marginLeftCm"`
	MarginRightCm  float64 `yaml:"marginRightCm"`
}

// PrintableWidthCm returns the width available to content.
func (p Page) PrintableWidthCm() float64 {
	return p.WidthCm - p.MarginLeftCm - p.MarginRightCm
}

// Fonts defines the default body fonts. EastAsian is applied to CJK text,
// ASCII to latin text and digits, via the run font mapping in the writer.
type Fonts struct {
	EastAsian string  `yaml:"eastAsian"`
	ASCII     string  `yaml:"ascii"`
	SizePt    float64 `yaml:"sizePt"`
	Color     string  `yaml:"color"`
}

// HeadingStyle defines one heading level.
type HeadingStyle struct {
	SizePt        float64 `yaml:"sizePt"`
	Bold          bool    `yaml:"bold"`
	Align         string  `yaml:"align"`
	SpaceBeforePt float64 `yaml:"spaceBeforePt"`
	SpaceAfterPt  float64 `yaml:"spaceAfterPt"`
	IndentPt      float64 `yaml:"indentPt"`
}

// Headings defines styles for heading levels 1-4.
type Headings struct {
	Level1 HeadingStyle `yaml:"level1"`
	Level2 HeadingStyle `yaml:"level2"`
	Level3 HeadingStyle `yaml:"level3"`
	Level4 HeadingStyle `yaml:"level4"`
}

// Level returns the style for a heading level (1-4).
// Out-of-range levels clamp to level 4.
func (h Headings) Level(level int) HeadingStyle {
	switch level {
	case 1:
		return h.Level1
	case 2:
		return h.Level2
	case 3:
		return h.Level3
	default:
		return h.Level4
	}
}

// Paragraph defines body paragraph layout.
type Paragraph struct {
	Align             string  `yaml:"align"`
	LineSpacing       float64 `yaml:"lineSpacing"`
	FirstLineIndentPt float64 `yaml:"firstLineIndentPt"`
}

// QuoteStyle defines block quote rendering.
type QuoteStyle struct {
	Background   string  `yaml:"background"`
	LeftIndentPt float64 `yaml:"leftIndentPt"`
	SizePt       float64 `yaml:"sizePt"`
	LineSpacing  float64 `yaml:"lineSpacing"`
}

// Lists defines the marker glyphs emitted for list items.
type Lists struct {
	BulletMarker  string `yaml:"bulletMarker"`
	TaskChecked   string `yaml:"taskChecked"`
	TaskUnchecked string `yaml:"taskUnchecked"`
}

// CellMargin defines table cell padding in twentieths of a point.
type CellMargin struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// TableRunStyle defines the text style used in table cells.
type TableRunStyle struct {
	Font   string  `yaml:"font"`
	SizePt float64 `yaml:"sizePt"`
	Color  string  `yaml:"color"`
	Bold   bool    `yaml:"bold"`
}

// Table defines table rendering. Applied uniformly: no per-cell overrides.
type Table struct {
	Border        bool          `yaml:"border"`
	BorderColor   string        `yaml:"borderColor"`
	BorderWidth   int           `yaml:"borderWidth"` // eighths of a point
	RowHeightCm   float64       `yaml:"rowHeightCm"`
	Alignment     string        `yaml:"alignment"`
	VerticalAlign string        `yaml:"verticalAlign"`
	LineSpacing   float64       `yaml:"lineSpacing"`
	CellMargin    CellMargin    `yaml:"cellMargin"`
	Header        TableRunStyle `yaml:"header"`
	Body          TableRunStyle `yaml:"body"`
}

// RunStyle defines a plain run style (font, size, color).
type RunStyle struct {
	Font   string  `yaml:"font"`
	SizePt float64 `yaml:"sizePt"`
	Color  string  `yaml:"color"`
}

// CodeContent defines the code block body style.
type CodeContent struct {
	Font         string  `yaml:"font"`
	SizePt       float64 `yaml:"sizePt"`
	Color        string  `yaml:"color"`
	LeftIndentPt float64 `yaml:"leftIndentPt"`
	LineSpacing  float64 `yaml:"lineSpacing"`
}

// CodeBlock defines fenced code block rendering. When Highlight is set,
// runs are colored per token using the named chroma style.
type CodeBlock struct {
	Highlight bool        `yaml:"highlight"`
	Style     string      `yaml:"style"`
	Label     RunStyle    `yaml:"label"`
	Content   CodeContent `yaml:"content"`
}

// MathStyle defines inline math ($x$) rendering.
type MathStyle struct {
	Font   string  `yaml:"font"`
	SizePt float64 `yaml:"sizePt"`
	Italic bool    `yaml:"italic"`
	Color  string  `yaml:"color"`
}

// RuleStyle defines the horizontal rule glyph line.
type RuleStyle struct {
	Character string  `yaml:"character"`
	Repeat    int     `yaml:"repeat"`
	Font      string  `yaml:"font"`
	SizePt    float64 `yaml:"sizePt"`
	Color     string  `yaml:"color"`
	Align     string  `yaml:"align"`
}

// PageNumber defines the footer page number field.
// Format "1/x" means current page, a slash, and the total page count;
// each of the three characters can be omitted to drop that part.
type PageNumber struct {
	Enabled  bool    `yaml:"enabled"`
	Format   string  `yaml:"format"`
	Position string  `yaml:"position"`
	Font     string  `yaml:"font"`
	SizePt   float64 `yaml:"sizePt"`
}

// QuoteConversion toggles straight-quote to CJK-quote substitution.
type QuoteConversion struct {
	Convert bool `yaml:"convert"`
}

// Image defines diagram image sizing.
type Image struct {
	DisplayRatio float64 `yaml:"displayRatio"`
	MaxWidthCm   float64 `yaml:"maxWidthCm"`
	TargetDPI    int     `yaml:"targetDpi"`
}

// DiagramLabels are the fallback heading texts per diagram kind.
type DiagramLabels struct {
	Flow    string `yaml:"flow"`
	Pie     string `yaml:"pie"`
	Gantt   string `yaml:"gantt"`
	Generic string `yaml:"generic"`
}

// Diagram defines external diagram rendering.
type Diagram struct {
	TimeoutSeconds int           `yaml:"timeoutSeconds"`
	Theme          string        `yaml:"theme"`
	WidthPx        int           `yaml:"widthPx"`
	HeightPx       int           `yaml:"heightPx"`
	Scale          float64       `yaml:"scale"`
	Labels         DiagramLabels `yaml:"labels"`
}

// Validate checks value ranges that would otherwise fail deep inside
// rendering. Returns the first problem found.
func (c *Config) Validate() error {
	for _, a := range []struct {
		field string
		value string
	}{
		{"paragraph.align", c.Paragraph.Align},
		{"headings.level1.align", c.Headings.Level1.Align},
		{"headings.level2.align", c.Headings.Level2.Align},
		{"headings.level3.align", c.Headings.Level3.Align},
		{"headings.level4.align", c.Headings.Level4.Align},
		{"table.alignment", c.Table.Alignment},
		{"horizontalRule.align", c.Rule.Align},
		{"pageNumber.position", c.PageNumber.Position},
	} {
		if !isValidAlign(a.value) {
			return fmt.Errorf("%w: %s = %q", ErrInvalidAlign, a.field, a.value)
		}
	}

	for _, col := range []struct {
		field string
		value string
	}{
		{"fonts.color", c.Fonts.Color},
		{"quote.background", c.Quote.Background},
		{"table.borderColor", c.Table.BorderColor},
		{"inlineCode.color", c.InlineCode.Color},
		{"math.color", c.Math.Color},
		{"horizontalRule.color", c.Rule.Color},
	} {
		if _, err := ParseColor(col.value); err != nil {
			return fmt.Errorf("%s: %w", col.field, err)
		}
	}

	if c.Image.DisplayRatio <= 0 || c.Image.DisplayRatio > 1 {
		return fmt.Errorf("%w: image.displayRatio = %v (must be in (0, 1])", ErrInvalidRatio, c.Image.DisplayRatio)
	}

	return nil
}

// isValidAlign checks an alignment keyword (case-insensitive).
// Empty means "use the kind's default".
func isValidAlign(align string) bool {
	switch strings.ToLower(align) {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// NormalizeColor converts an already-validated "#RRGGBB" or "RRGGBB"
// value to the uppercase hex form OOXML expects. Validate rejects
// invalid colors at load time; anything that still slips through
// falls back to black.
func NormalizeColor(s string) string {
	hex, err := ParseColor(s)
	if err != nil {
		return "000000"
	}
	return hex
}

// ParseColor validates "#RRGGBB" or "RRGGBB" and returns the uppercase
// hex form OOXML expects. Empty input parses to black.
func ParseColor(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return "000000", nil
	}
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return strings.ToUpper(s), nil
}
