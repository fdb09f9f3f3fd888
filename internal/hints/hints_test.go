package hints

// Notes:
// - ForDiagramTool tests cannot use t.Parallel() because they use
//   t.Setenv() which modifies process environment. This is an
//   acceptable gap: we test observable behavior through environment
//   manipulation.

import (
	"strings"
	"testing"
)

func TestForDiagramTool_NoEnv(t *testing.T) {
	t.Setenv("MMDCCMD", "")

	hint := ForDiagramTool()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "MMDCCMD") {
		t.Error("expected MMDCCMD suggestion when unset")
	}
	if !strings.Contains(hint, "mermaid-cli") {
		t.Error("expected install suggestion")
	}
}

func TestForDiagramTool_EnvSet(t *testing.T) {
	t.Setenv("MMDCCMD", "/opt/mmdc")

	hint := ForDiagramTool()

	if strings.Contains(hint, "set MMDCCMD") {
		t.Error("should not suggest MMDCCMD when already set")
	}
	if !strings.Contains(hint, "mermaid-cli") {
		t.Error("expected install suggestion")
	}
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	hint := ForTimeout()
	if !strings.Contains(hint, "--timeout") {
		t.Error("expected --timeout suggestion")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "no user path",
			searched: []string{"/etc/md2docx.yaml"},
			want:     "--config",
		},
		{
			name:     "with user path",
			searched: []string{"/home/u/.config/go-md2docx/legal.yaml"},
			want:     ".config/go-md2docx/legal.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := ForConfigNotFound(tt.searched)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("ForConfigNotFound(%v) = %q, want substring %q", tt.searched, hint, tt.want)
			}
		})
	}
}

func TestForPresetNotFound(t *testing.T) {
	t.Parallel()

	if got := ForPresetNotFound(nil); got != "" {
		t.Errorf("ForPresetNotFound(nil) = %q, want empty", got)
	}

	hint := ForPresetNotFound([]string{"legal", "simple"})
	if !strings.Contains(hint, "legal, simple") {
		t.Errorf("ForPresetNotFound = %q, want available list", hint)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}
