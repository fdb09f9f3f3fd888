package md2docx

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// isSeparatorLine reports whether the line is a table separator row:
// at least one dash, and nothing but pipes, dashes, colons, and
// whitespace.
func isSeparatorLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || !strings.Contains(line, "-") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// isTableRow reports whether the line is a table row candidate: a
// separator line or any line containing a pipe. Deliberately loose;
// higher-priority block rules run first in the scanner.
func isTableRow(line string) bool {
	if line == "" {
		return false
	}
	return isSeparatorLine(line) || strings.Contains(line, "|")
}

// splitTableRow splits a pipe-delimited row into trimmed cell texts,
// dropping one leading and one trailing pipe when present.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// pipeTableBlock builds a Table block from contiguous table candidate
// lines. Separator rows are dropped; the first remaining row is the
// header. Returns ok=false when no content rows remain.
func pipeTableBlock(lines []string) (Block, bool) {
	var rows [][]string
	for _, line := range lines {
		if isSeparatorLine(line) {
			continue
		}
		if cells := splitTableRow(line); len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return Block{}, false
	}
	return newTableBlock(rows), true
}

// newTableBlock wraps rows in a Table block. Rows may be ragged; the
// column count is the widest row and short rows are left short.
func newTableBlock(rows [][]string) Block {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return Block{Kind: KindTable, Rows: rows, Columns: cols}
}

// htmlTableRows extracts cell texts from embedded <table> markup. The
// first <table> element found is used; th and td cells are flattened
// to their text content.
func htmlTableRows(markup string) ([][]string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing table markup: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table element in markup")
	}

	var rows [][]string
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)
	return rows, nil
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
