package md2docx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/preset"
)

// mmdcEnvVar overrides the diagram tool path lookup.
const mmdcEnvVar = "MMDCCMD"

// maxFallbackEdges caps the edge list in the flow fallback text.
const maxFallbackEdges = 8

// Sanitization patterns. Mermaid v11 parses markdown inside node
// labels, so list markers and backticks in labels break rendering
// with "Unsupported markdown" errors. Replacing them with inert
// glyphs is a narrow workaround, not a general transformation.
var (
	labelNumberedRegex = regexp.MustCompile(`([\[({>])("?\s*)(\d+)\.\s`)
	labelBulletRegex   = regexp.MustCompile(`([\[({>])("?\s*)[-*]\s`)
	lineBulletRegex    = regexp.MustCompile(`(?m)^(\s*)[-*]\s+`)
	lineNumberedRegex  = regexp.MustCompile(`(?m)^(\s*)(\d+)\.\s+`)
)

// sanitizeDiagramSource rewrites diagram source so the external
// renderer does not choke on markdown-like syntax inside labels:
// backticks become straight quotes, list markers inside label
// delimiters become bullets, and numbered markers become "N:".
func sanitizeDiagramSource(src string) string {
	s := strings.ReplaceAll(src, "`", "'")
	s = labelNumberedRegex.ReplaceAllString(s, "$1${2}$3: ")
	s = labelBulletRegex.ReplaceAllString(s, "$1$2• ")
	s = lineBulletRegex.ReplaceAllString(s, "$1• ")
	s = lineNumberedRegex.ReplaceAllString(s, "$1$2: ")
	return s
}

// diagramRenderer invokes the mermaid CLI to rasterize diagram source.
type diagramRenderer struct {
	cfg preset.Diagram
}

// toolPath resolves the mmdc binary: the MMDCCMD environment variable
// wins, then a node_modules/.bin/mmdc next to the working directory,
// then PATH lookup.
func (r *diagramRenderer) toolPath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(mmdcEnvVar)); env != "" {
		return env, nil
	}
	local := filepath.Join("node_modules", ".bin", "mmdc")
	if fileutil.FileExists(local) {
		return local, nil
	}
	if path, err := exec.LookPath("mmdc"); err == nil {
		return path, nil
	}
	return "", ErrDiagramTool
}

// Render rasterizes diagram source to a PNG at outputPath. Any
// failure (tool missing, non-zero exit, timeout) returns an error the
// caller downgrades to a text fallback; rendering is never fatal.
func (r *diagramRenderer) Render(ctx context.Context, src, outputPath string) error {
	tool, err := r.toolPath()
	if err != nil {
		return err
	}

	srcPath, cleanup, err := fileutil.WriteTempFile(src, "mmd")
	if err != nil {
		return fmt.Errorf("%w: writing diagram source: %v", ErrDiagramRender, err)
	}
	defer cleanup()

	timeout := time.Duration(r.cfg.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"-i", srcPath,
		"-o", outputPath,
		"-t", r.cfg.Theme,
		"-w", strconv.Itoa(r.cfg.WidthPx),
		"-H", strconv.Itoa(r.cfg.HeightPx),
		"--scale", strconv.FormatFloat(r.cfg.Scale, 'f', 1, 64),
	}
	cmd := exec.CommandContext(ctx, tool, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrDiagramTimeout, timeout)
		}
		return fmt.Errorf("%w: %v: %s", ErrDiagramRender, err, strings.TrimSpace(stderr.String()))
	}
	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: tool produced no output", ErrDiagramRender)
	}
	return nil
}

// diagramFallback is the text summary used when rendering fails.
type diagramFallback struct {
	Title string
	Lines []string
}

// Node definition and edge patterns for the flow extractor.
var (
	nodeDefRegex  = regexp.MustCompile(`(\w+)\["([^"]+)"\]`)
	nodeTrimRegex = regexp.MustCompile(`^(\w+)\[\"?([^\]\"]+)\"?\]`)
	pieItemRegex  = regexp.MustCompile(`"([^"]+)"\s*:\s*(\d+(?:\.\d+)?)`)
)

// fallbackText derives a deterministic text summary from diagram
// source, dispatching on the declared diagram kind.
func fallbackText(src string, labels preset.DiagramLabels) diagramFallback {
	lower := strings.ToLower(src)
	switch {
	case strings.Contains(lower, "graph"):
		return flowFallback(src, labels.Flow)
	case strings.Contains(lower, "pie"):
		return pieFallback(src, labels.Pie)
	case strings.Contains(lower, "gantt"):
		return ganttFallback(src, labels.Gantt)
	default:
		return diagramFallback{Title: labels.Generic, Lines: strings.Split(src, "\n")}
	}
}

// flowFallback lists the diagram's edges, resolving node identifiers
// to their quoted labels when a definition exists.
func flowFallback(src, title string) diagramFallback {
	nodes := make(map[string]string)
	for _, m := range nodeDefRegex.FindAllStringSubmatch(src, -1) {
		nodes[m[1]] = m[2]
	}

	resolve := func(s string) string {
		s = strings.TrimSpace(s)
		if m := nodeTrimRegex.FindStringSubmatch(s); m != nil {
			return m[2]
		}
		if label, ok := nodes[s]; ok {
			return label
		}
		return s
	}

	var edges []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		sep := ""
		switch {
		case strings.Contains(line, "-->"):
			sep = "-->"
		case strings.Contains(line, "->"):
			sep = "->"
		default:
			continue
		}
		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			continue
		}
		edges = append(edges, fmt.Sprintf("• %s → %s", resolve(parts[0]), resolve(parts[1])))
		if len(edges) == maxFallbackEdges {
			break
		}
	}
	return diagramFallback{Title: title, Lines: edges}
}

// pieFallback lists label/value pairs from a pie declaration.
func pieFallback(src, title string) diagramFallback {
	var items []string
	for _, line := range strings.Split(src, "\n") {
		if m := pieItemRegex.FindStringSubmatch(line); m != nil {
			items = append(items, fmt.Sprintf("• %s: %s", m[1], m[2]))
		}
	}
	return diagramFallback{Title: title, Lines: items}
}

// ganttFallback lists sections and their task names.
func ganttFallback(src, title string) diagramFallback {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "section "):
			lines = append(lines, strings.TrimPrefix(line, "section ")+":")
		case strings.Contains(line, ":") && !strings.HasPrefix(line, "title") &&
			!strings.HasPrefix(line, "dateFormat") && !strings.HasPrefix(line, "gantt"):
			task := strings.TrimSpace(strings.SplitN(line, ":", 2)[0])
			if task != "" {
				lines = append(lines, "• "+task)
			}
		}
	}
	return diagramFallback{Title: title, Lines: lines}
}
