package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrReadInput     = errors.New("failed to read input file")
	ErrDecodeInput   = errors.New("failed to decode input file")
	ErrDocxEncode    = errors.New("document encoding failed")
	ErrWriteOutput   = errors.New("failed to write output file")

	// Diagram rendering errors. All are recoverable: rendering falls
	// back to a text summary and the error surfaces as a Warning.
	ErrDiagramTool    = errors.New("diagram tool not found")
	ErrDiagramRender  = errors.New("diagram rendering failed")
	ErrDiagramTimeout = errors.New("diagram rendering timed out")

	// Image handling errors.
	ErrImageDecode = errors.New("failed to decode image")
	ErrImageEncode = errors.New("failed to encode image")
)
