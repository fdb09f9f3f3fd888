package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := WriteTempFile("graph TD\nA-->B\n", "mmd")
	if err != nil {
		t.Fatalf("WriteTempFile() error: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "graph TD\nA-->B\n" {
		t.Errorf("temp file content = %q", string(data))
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup() did not remove the temp file")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ext     string
		wantErr error
	}{
		{name: "empty", ext: "", wantErr: ErrExtensionEmpty},
		{name: "path separator", ext: "a/b", wantErr: ErrExtensionPathTraversal},
		{name: "backslash", ext: "a\\b", wantErr: ErrExtensionPathTraversal},
		{name: "null byte", ext: "a\x00b", wantErr: ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := WriteTempFile("x", tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(file, []byte("# hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(existing file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(directory) = true, want false")
	}
	if FileExists(filepath.Join(dir, "missing.md")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"legal", false},
		{"my-preset", false},
		{"./custom.yaml", true},
		{"../shared/legal.yaml", true},
		{"/etc/md2docx/legal.yaml", true},
		{"C:\\configs\\legal.yaml", true},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
