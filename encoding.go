package md2docx

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// DecodeMarkdown interprets raw Markdown bytes as UTF-8, falling back
// to GBK for legacy files. Returns ErrDecodeInput when neither works.
func DecodeMarkdown(raw []byte) (string, error) {
	return decodeContent(raw)
}

func decodeContent(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	// The decoder substitutes U+FFFD for unmappable sequences instead
	// of failing; treat any substitution as undecodable input.
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", fmt.Errorf("%w: not valid UTF-8 or GBK", ErrDecodeInput)
	}
	return string(decoded), nil
}
