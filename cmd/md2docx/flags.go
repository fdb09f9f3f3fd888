package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds typography selection flags.
type styleFlags struct {
	preset string
}

// diagramFlags holds diagram rendering flags.
type diagramFlags struct {
	keepImages bool
	imageDir   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	style   styleFlags
	diagram diagramFlags
	output  string
	workers int
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "typography config file (YAML)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStyleFlags adds typography flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.preset, "preset", "p", "", "embedded preset: legal, academic, report, simple")
}

// addDiagramFlags adds diagram flags to a FlagSet.
func addDiagramFlags(fs *flag.FlagSet, f *diagramFlags) {
	fs.BoolVar(&f.keepImages, "keep-images", false, "keep rendered diagram images next to output")
	fs.StringVar(&f.imageDir, "image-dir", "", "directory for rendered diagram images")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addDiagramFlags(fs, &f.diagram)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if f.style.preset != "" && f.common.config != "" {
		return nil, nil, fmt.Errorf("--preset and --config are mutually exclusive")
	}

	return f, fs.Args(), nil
}

// parseArgs splits os.Args into a command, its parsed flags, and
// positional arguments. Only the convert command carries flags.
func parseArgs(argv []string) (command string, flags *convertFlags, args []string, err error) {
	if len(argv) < 2 {
		return "help", nil, nil, nil
	}

	command = argv[1]
	rest := argv[2:]

	switch command {
	case "convert":
		flags, args, err = parseConvertFlags(rest)
		return command, flags, args, err
	case "presets", "version", "help":
		return command, nil, rest, nil
	case "-h", "--help":
		return "help", nil, nil, nil
	case "--version":
		return "version", nil, nil, nil
	default:
		return "", nil, nil, fmt.Errorf("unknown command %q (run 'md2docx help')", command)
	}
}
