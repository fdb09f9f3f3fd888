package main

import (
	"context"
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/preset"
)

// Exit codes for md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitTimeout = 4 // Conversion or diagram tool timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Timeouts (exit 4)
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, md2docx.ErrDiagramTimeout) {
		return ExitTimeout
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2docx.ErrReadInput) ||
		errors.Is(err, md2docx.ErrWriteOutput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteDocx) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, preset.ErrPresetNotFound) ||
		errors.Is(err, preset.ErrPresetParse) ||
		errors.Is(err, preset.ErrEmptyName) ||
		errors.Is(err, preset.ErrInvalidAlign) ||
		errors.Is(err, preset.ErrInvalidColor) ||
		errors.Is(err, preset.ErrInvalidRatio) ||
		errors.Is(err, md2docx.ErrEmptyMarkdown) ||
		errors.Is(err, md2docx.ErrDecodeInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
