package md2docx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/preset"
)

// Converter transcodes Markdown to a Word document. Create with
// NewConverter; a Converter is immutable after construction and safe
// for concurrent use.
type Converter struct {
	cfg    converterConfig
	preset *preset.Config
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithPreset,
// WithConfigFile). Returns an error if the selected preset or config
// file cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: converterConfig{timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.cfg.configPath != "":
		cfg, err := preset.LoadFile(c.cfg.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		c.preset = cfg
	case c.cfg.presetName != "":
		cfg, err := preset.Resolve(c.cfg.presetName)
		if err != nil {
			return nil, fmt.Errorf("resolving preset: %w", err)
		}
		c.preset = cfg
	default:
		c.preset = preset.Default()
	}

	return c, nil
}

// PresetName returns the name of the active configuration.
func (c *Converter) PresetName() string {
	return c.preset.Name
}

// Convert transcodes input.Markdown into a DOCX document. Degraded
// elements (failed diagrams, skipped blocks) are reported in
// Result.Warnings; only empty input, context cancellation, and
// document serialization fail the conversion.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	blocks := scanBlocks(input.Markdown)

	r := newRenderer(c.preset, input.ImageDir, input.ImageDir != "")
	r.renderAll(ctx, blocks)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("conversion aborted: %w", err)
	}

	data, err := r.doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxEncode, err)
	}

	return &Result{DOCX: data, Warnings: r.warnings, Images: r.images}, nil
}

// ConvertFile reads a Markdown file and writes the converted document
// to outputPath. An empty outputPath defaults to the input path with
// a .docx extension. Diagram images land in a sibling directory named
// after the input file stem.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	content, err := decodeContent(raw)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	if outputPath == "" {
		outputPath = stem + ".docx"
	}

	result, err := c.Convert(ctx, Input{
		Markdown: content,
		ImageDir: stem + "_images",
	})
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, result.DOCX, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return result, nil
}
