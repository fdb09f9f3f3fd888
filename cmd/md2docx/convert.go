package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/preset"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteDocx          = errors.New("failed to write document")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Converter is the interface the convert command depends on.
type Converter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2docx.Converter)(nil)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []md2docx.Warning
	Err        error
	Duration   time.Duration
}

// run dispatches a parsed command.
func run(command string, flags *convertFlags, args []string, deps *Dependencies) error {
	switch command {
	case "convert":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return runConvert(ctx, args, flags, deps)
	case "presets":
		printPresets(deps.Stdout)
		return nil
	case "version":
		fmt.Fprintf(deps.Stdout, "md2docx %s\n", Version)
		return nil
	case "help":
		runHelp(args, deps)
		return nil
	default:
		printUsage(deps.Stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, deps *Dependencies) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, preset.ErrPresetNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForPresetNotFound(preset.Names()))
		}
		return err
	}

	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	inputPath := positionalArgs[0]

	files, err := discoverFiles(inputPath, flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	workers := md2docx.ResolveWorkers(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(deps.Stderr, "Workers: %d\n", workers)
	}

	results := convertBatch(ctx, conv, files, flags, workers, deps)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, deps)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// buildOptions translates CLI flags into converter options.
func buildOptions(flags *convertFlags) ([]md2docx.Option, error) {
	var opts []md2docx.Option

	if flags.common.config != "" {
		opts = append(opts, md2docx.WithConfigFile(flags.common.config))
	}
	if flags.style.preset != "" {
		opts = append(opts, md2docx.WithPreset(flags.style.preset))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q (expected a positive duration like 30s or 2m)",
				ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, md2docx.WithTimeout(d))
	}

	return opts, nil
}

// convertBatch processes files concurrently with a bounded worker count.
// The Converter is stateless and shared across workers.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, flags *convertFlags, workers int, deps *Dependencies) []ConversionResult {
	results := make([]ConversionResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
				return nil
			}
			results[i] = convertOne(ctx, conv, f, flags, deps)
			return nil
		})
	}

	// Workers never return errors; failures are per-file results.
	_ = g.Wait()
	return results
}

// convertOne processes a single file and returns the result.
func convertOne(ctx context.Context, conv Converter, f FileToConvert, flags *convertFlags, deps *Dependencies) ConversionResult {
	start := deps.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = deps.Now().Sub(start)
		return result
	}

	raw, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	content, err := md2docx.DecodeMarkdown(raw)
	if err != nil {
		return fail(err)
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	convResult, err := conv.Convert(ctx, md2docx.Input{
		Markdown: content,
		ImageDir: imageDirFor(f.OutputPath, flags),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w%s", err, hints.ForTimeout())
		}
		return fail(err)
	}
	result.Warnings = convResult.Warnings

	// #nosec G306 -- documents are meant to be readable
	if err := os.WriteFile(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteDocx, err))
	}

	result.Duration = deps.Now().Sub(start)
	return result
}

// imageDirFor decides where rendered diagram images land for one output
// file. An explicit --image-dir wins; --keep-images uses a sibling
// directory named after the output stem; otherwise images are embedded
// only and never written to disk.
func imageDirFor(outputPath string, flags *convertFlags) string {
	if flags.diagram.imageDir != "" {
		return flags.diagram.imageDir
	}
	if flags.diagram.keepImages {
		stem := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
		return stem + "_images"
	}
	return ""
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the document output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".docx")
	}

	if strings.HasSuffix(outputDir, ".docx") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".docx")
		}
	}

	return filepath.Join(outputDir, base+".docx")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2docx.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2docx.MaxWorkers)
	}
	return nil
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) int {
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		for _, w := range r.Warnings {
			msg := w.String()
			if errors.Is(w.Err, md2docx.ErrDiagramTool) {
				msg += hints.ForDiagramTool()
			}
			fmt.Fprintf(deps.Stderr, "WARNING %s: %s\n", r.InputPath, msg)
		}

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}
