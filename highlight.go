package md2docx

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeToken is one colored fragment of a highlighted code line.
type codeToken struct {
	Text   string
	Color  string // RRGGBB, empty for the default code color
	Bold   bool
	Italic bool
}

// highlightCode tokenizes source code and maps each token to its
// style color, split into lines. Unknown languages fall back to the
// plaintext lexer, so the result always covers the full source.
func highlightCode(source, language, styleName string) ([][]codeToken, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("tokenizing %s source: %w", language, err)
	}

	lines := [][]codeToken{{}}
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		base := codeToken{
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			base.Color = strings.ToUpper(fmt.Sprintf("%02x%02x%02x",
				entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
		}

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []codeToken{})
			}
			if part == "" {
				continue
			}
			t := base
			t.Text = part
			last := len(lines) - 1
			lines[last] = append(lines[last], t)
		}
	}

	// Tokenizers emit a trailing newline; drop the empty final line it
	// produces so output lines match source lines.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines, nil
}
