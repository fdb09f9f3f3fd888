package main

import (
	"context"
	"fmt"
	"os"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/preset"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Timeouts (exit 4)
		{"deadline exceeded", context.DeadlineExceeded, ExitTimeout},
		{"diagram timeout", md2docx.ErrDiagramTimeout, ExitTimeout},
		{"wrapped deadline", fmt.Errorf("aborted: %w", context.DeadlineExceeded), ExitTimeout},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read input", md2docx.ErrReadInput, ExitIO},
		{"write docx", ErrWriteDocx, ExitIO},
		{"write output", md2docx.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"preset not found", preset.ErrPresetNotFound, ExitUsage},
		{"preset parse", preset.ErrPresetParse, ExitUsage},
		{"empty preset name", preset.ErrEmptyName, ExitUsage},
		{"invalid align", preset.ErrInvalidAlign, ExitUsage},
		{"empty markdown", md2docx.ErrEmptyMarkdown, ExitUsage},
		{"decode input", md2docx.ErrDecodeInput, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"wrapped preset not found", fmt.Errorf("resolving: %w", preset.ErrPresetNotFound), ExitUsage},

		// General errors (exit 1)
		{"unknown error", fmt.Errorf("something broke"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Error("ExitSuccess must be 0")
	}
	for _, code := range []int{ExitGeneral, ExitUsage, ExitIO, ExitTimeout} {
		if code <= 0 || code >= 126 {
			t.Errorf("exit code %d outside (0, 126)", code)
		}
	}
}
