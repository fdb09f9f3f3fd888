package md2docx

import (
	"strings"
	"testing"
)

func TestResolveSpans_Patterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "plain text",
			input: "hello world",
			want:  []Span{{Text: "hello world"}},
		},
		{
			name:  "bold",
			input: "a **b** c",
			want:  []Span{{Text: "a "}, {Text: "b", Format: FormatBold}, {Text: " c"}},
		},
		{
			name:  "bold italic triple marker",
			input: "***x***",
			want:  []Span{{Text: "x", Format: FormatBold | FormatItalic}},
		},
		{
			name:  "underscore bold",
			input: "__x__",
			want:  []Span{{Text: "x", Format: FormatBold}},
		},
		{
			name:  "italic single marker",
			input: "*x*",
			want:  []Span{{Text: "x", Format: FormatItalic}},
		},
		{
			name:  "underline tag",
			input: "<u>x</u>",
			want:  []Span{{Text: "x", Format: FormatUnderline}},
		},
		{
			name:  "strikethrough",
			input: "~~x~~",
			want:  []Span{{Text: "x", Format: FormatStrike}},
		},
		{
			name:  "inline code",
			input: "run `go test` now",
			want:  []Span{{Text: "run "}, {Text: "go test", Format: FormatCode}, {Text: " now"}},
		},
		{
			name:  "inline math",
			input: "$e=mc^2$",
			want:  []Span{{Text: "e=mc^2", Format: FormatMath}},
		},
		{
			name:  "multiple non-overlapping markers",
			input: "**a** and *b*",
			want: []Span{
				{Text: "a", Format: FormatBold},
				{Text: " and "},
				{Text: "b", Format: FormatItalic},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := resolveSpans(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("spans = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The longer full match wins overlap resolution. The inner italic
// candidate inside a bold marker must not split the bold span.
func TestResolveSpans_OverlapLongerWins(t *testing.T) {
	t.Parallel()

	got := resolveSpans("**a *b* c**")
	if len(got) != 1 {
		t.Fatalf("spans = %+v, want exactly one", got)
	}
	if got[0].Text != "a *b* c" {
		t.Errorf("text = %q, want %q", got[0].Text, "a *b* c")
	}
	if got[0].Format != FormatBold {
		t.Errorf("format = %v, want bold only", got[0].Format)
	}
}

// Concatenated span text equals the input with marker syntax removed.
func TestResolveSpans_RoundTripTextIntegrity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"**bold** mid *italic* `code` $m$", "bold mid italic code m"},
		{"前缀**加粗**后缀", "前缀加粗后缀"},
		{"~~s~~<u>u</u>", "su"},
	}
	for _, tt := range tests {
		var sb strings.Builder
		for _, s := range resolveSpans(tt.input) {
			sb.WriteString(s.Text)
		}
		if sb.String() != tt.want {
			t.Errorf("resolveSpans(%q) concatenates to %q, want %q", tt.input, sb.String(), tt.want)
		}
	}
}

func TestResolveSpans_ItalicLookaround(t *testing.T) {
	t.Parallel()

	// A doubled marker must not be consumed by the single-marker rule.
	got := resolveSpans("**x**")
	if len(got) != 1 || got[0].Format != FormatBold {
		t.Fatalf("spans = %+v, want single bold span", got)
	}
}

func TestSplitLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  int
	}{
		{"no breaks", 1},
		{"a<br>b", 2},
		{"a<br/>b<BR />c", 3},
	}
	for _, tt := range tests {
		if got := splitLineBreaks(tt.input); len(got) != tt.want {
			t.Errorf("splitLineBreaks(%q) = %d segments, want %d", tt.input, len(got), tt.want)
		}
	}
}
