package md2docx

import (
	"regexp"
	"strings"
)

// Precompiled patterns for block classification.
var (
	diagramFenceRegex = regexp.MustCompile("^```\\s*mermaid\\b")
	numberedRegex     = regexp.MustCompile(`^\d+\.\s`)
)

// scanBlocks classifies the input lines into an ordered Block list.
// Single forward pass; multi-line constructs (fences, tables, quotes)
// consume lines greedily until their terminating condition. Malformed
// constructs degrade: an unterminated fence runs to end of input, a
// lone table candidate line is reclassified as a rule or paragraph.
func scanBlocks(content string) []Block {
	lines := strings.Split(content, "\n")

	var blocks []Block
	hasSeenH2 := false
	bodyBeforeFirstH2 := false

	// markBody records body content ahead of the first level-2
	// heading, which controls spacer insertion before such headings.
	markBody := func() {
		if !hasSeenH2 {
			bodyBeforeFirstH2 = true
		}
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			i++
			continue
		}

		// Diagram fence, checked before plain code fences.
		if diagramFenceRegex.MatchString(line) {
			var src []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				src = append(src, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing fence
			}
			if len(src) > 0 {
				blocks = append(blocks, Block{Kind: KindDiagram, Lines: src})
				markBody()
			}
			continue
		}

		// Code fence with optional language tag.
		if strings.HasPrefix(line, "```") {
			language := strings.TrimSpace(line[3:])
			var code []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				code = append(code, lines[i])
				i++
			}
			if i < len(lines) {
				i++
			}
			blocks = append(blocks, Block{Kind: KindCodeBlock, Language: language, Lines: code})
			markBody()
			continue
		}

		// Embedded HTML table, collected through its closing tag.
		if strings.Contains(strings.ToLower(line), "<table") {
			var html []string
			for i < len(lines) {
				html = append(html, lines[i])
				closed := strings.Contains(strings.ToLower(lines[i]), "</table>")
				i++
				if closed {
					break
				}
			}
			rows, err := htmlTableRows(strings.Join(html, "\n"))
			if err == nil && len(rows) > 0 {
				blocks = append(blocks, newTableBlock(rows))
				markBody()
			}
			continue
		}

		// Pipe-delimited table: contiguous candidate lines, at least a
		// header and a separator.
		if isTableRow(line) {
			var rows []string
			for i < len(lines) && isTableRow(strings.TrimSpace(lines[i])) {
				rows = append(rows, strings.TrimSpace(lines[i]))
				i++
			}
			if len(rows) >= 2 {
				if b, ok := pipeTableBlock(rows); ok {
					blocks = append(blocks, b)
					markBody()
				}
				continue
			}
			// A lone candidate is not a table. A bare dash run is still
			// a horizontal rule; anything else falls through as a
			// paragraph.
			if isRuleLine(rows[0]) {
				blocks = append(blocks, Block{Kind: KindRule})
			} else {
				blocks = append(blocks, Block{Kind: KindParagraph, Text: rows[0]})
			}
			markBody()
			continue
		}

		if isRuleLine(line) {
			blocks = append(blocks, Block{Kind: KindRule})
			markBody()
			i++
			continue
		}

		if checked, text, ok := matchTaskItem(line); ok {
			blocks = append(blocks, Block{Kind: KindTaskItem, Checked: checked, Text: text})
			markBody()
			i++
			continue
		}

		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
			blocks = append(blocks, Block{Kind: KindBulletItem, Text: strings.TrimSpace(line[2:])})
			markBody()
			i++
			continue
		}

		// Numbered items keep their literal prefix; no renumbering.
		if numberedRegex.MatchString(line) {
			blocks = append(blocks, Block{Kind: KindNumberedItem, Text: line})
			markBody()
			i++
			continue
		}

		// Block quote: contiguous >-prefixed lines, blank quote lines
		// preserved inside the run.
		if strings.HasPrefix(line, ">") {
			var quote []string
			for i < len(lines) {
				trimmed := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(trimmed, ">") {
					break
				}
				quote = append(quote, strings.TrimSpace(trimmed[1:]))
				i++
			}
			blocks = append(blocks, Block{Kind: KindQuote, Lines: quote})
			markBody()
			continue
		}

		if level, text, ok := matchHeading(line); ok {
			b := Block{Kind: KindHeading, Level: level, Text: text}
			if level == 2 {
				b.SpacerBefore = hasSeenH2 || bodyBeforeFirstH2
				hasSeenH2 = true
			}
			blocks = append(blocks, b)
			i++
			continue
		}

		blocks = append(blocks, Block{Kind: KindParagraph, Text: line})
		markBody()
		i++
	}

	return blocks
}

// isRuleLine reports whether the line is a horizontal rule.
func isRuleLine(line string) bool {
	switch line {
	case "---", "***", "___":
		return true
	}
	return false
}

// matchTaskItem matches `- [ ]`, `- [x]`, and `- [X]` prefixes.
func matchTaskItem(line string) (checked bool, text string, ok bool) {
	switch {
	case strings.HasPrefix(line, "- [ ]"):
		return false, strings.TrimSpace(line[5:]), true
	case strings.HasPrefix(line, "- [x]"), strings.HasPrefix(line, "- [X]"):
		return true, strings.TrimSpace(line[5:]), true
	}
	return false, "", false
}

// matchHeading matches 1-4 leading # characters followed by a space.
func matchHeading(line string) (level int, text string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n < 1 || n > 4 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	return n, strings.TrimSpace(line[n+1:]), true
}
