package md2docx

import (
	"regexp"
	"sort"

	"github.com/dlclark/regexp2"
)

// inlinePattern pairs a marker regex with the format it applies. The
// capture group holds the content with markers stripped.
type inlinePattern struct {
	re     *regexp2.Regexp
	format Format
}

// Patterns are tried in order; triple markers come before their double
// and single forms so the longest marker wins the overlap filter. The
// single-marker emphasis forms need look-around to avoid matching
// inside a doubled marker, which is why these are regexp2 patterns.
var inlinePatterns = []inlinePattern{
	{regexp2.MustCompile(`\*\*\*(.*?)\*\*\*`, 0), FormatBold | FormatItalic},
	{regexp2.MustCompile(`___(.*?)___`, 0), FormatBold | FormatItalic},
	{regexp2.MustCompile(`\*\*(.*?)\*\*`, 0), FormatBold},
	{regexp2.MustCompile(`__(.*?)__`, 0), FormatBold},
	{regexp2.MustCompile(`(?<!\*)\*([^*\n]+?)\*(?!\*)`, 0), FormatItalic},
	{regexp2.MustCompile(`(?<!_)_([^_\n]+?)_(?!_)`, 0), FormatItalic},
	{regexp2.MustCompile(`<u>(.*?)</u>`, 0), FormatUnderline},
	{regexp2.MustCompile(`~~(.*?)~~`, 0), FormatStrike},
	{regexp2.MustCompile("`([^`\n]+)`", 0), FormatCode},
	{regexp2.MustCompile(`\$([^$\n]+?)\$`, 0), FormatMath},
}

// lineBreakRegex splits on <br> tags, which become in-paragraph
// breaks.
var lineBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>`)

// splitLineBreaks splits text on <br> tags. The result always has at
// least one element.
func splitLineBreaks(text string) []string {
	return lineBreakRegex.Split(text, -1)
}

// markerMatch is one regex hit with its source range in runes.
type markerMatch struct {
	start   int
	end     int
	content string
	format  Format
	fullLen int // full match length including markers
}

// resolveSpans splits a text segment into an ordered, non-overlapping
// span list. All marker patterns are matched across the whole segment,
// then overlapping matches are resolved by keeping the longer full
// match. Gaps between kept matches become plain spans. Concatenating
// the span texts yields the input with marker syntax stripped.
func resolveSpans(text string) []Span {
	if text == "" {
		return nil
	}

	var matches []markerMatch
	for _, p := range inlinePatterns {
		m, err := p.re.FindStringMatch(text)
		for err == nil && m != nil {
			matches = append(matches, markerMatch{
				start:   m.Index,
				end:     m.Index + m.Length,
				content: m.Groups()[1].Capture.String(),
				format:  p.format,
				fullLen: m.Length,
			})
			m, err = p.re.FindNextMatch(m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	// Overlap resolution: a later match replaces an earlier one only
	// when its full match is strictly longer.
	var kept []markerMatch
	for _, m := range matches {
		overlap := false
		for k, existing := range kept {
			if m.start < existing.end && m.end > existing.start {
				if m.fullLen > existing.fullLen {
					kept = append(kept[:k], kept[k+1:]...)
					kept = append(kept, m)
				}
				overlap = true
				break
			}
		}
		if !overlap {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].start < kept[j].start })

	// regexp2 offsets are rune-based.
	runes := []rune(text)
	var spans []Span
	pos := 0
	for _, m := range kept {
		if pos < m.start {
			spans = append(spans, Span{Text: string(runes[pos:m.start])})
		}
		if m.content != "" {
			spans = append(spans, Span{Text: m.content, Format: m.format})
		}
		pos = m.end
	}
	if pos < len(runes) {
		spans = append(spans, Span{Text: string(runes[pos:])})
	}

	if len(spans) == 0 {
		spans = append(spans, Span{Text: text})
	}
	return spans
}
