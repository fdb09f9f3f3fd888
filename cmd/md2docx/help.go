package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-md2docx/internal/preset"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to Word documents")
	fmt.Fprintln(w, "  presets    List embedded typography presets")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to Word (.docx) documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Typography:")
	fmt.Fprintf(w, "  -p, --preset <name>       Embedded preset: %s\n", strings.Join(preset.Names(), ", "))
	fmt.Fprintln(w, "  -c, --config <path>       Typography config file (YAML)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --keep-images         Keep rendered diagram images next to output")
	fmt.Fprintln(w, "      --image-dir <path>    Directory for rendered diagram images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mermaid diagrams render through mermaid-cli when available; set")
	fmt.Fprintln(w, "MMDCCMD to point at a specific mmdc binary. Without the tool,")
	fmt.Fprintln(w, "diagrams degrade to a textual summary.")
}

// printPresets lists the embedded presets.
func printPresets(w io.Writer) {
	for _, name := range preset.Names() {
		marker := "  "
		if name == preset.DefaultName {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s\n", marker, name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "* default")
}

// runHelp prints help for a command.
func runHelp(args []string, deps *Dependencies) {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return
	}
	switch args[0] {
	case "convert":
		printConvertUsage(deps.Stdout)
	case "presets":
		fmt.Fprintln(deps.Stdout, "Usage: md2docx presets")
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "List embedded typography presets.")
	case "version":
		fmt.Fprintln(deps.Stdout, "Usage: md2docx version")
	default:
		printUsage(deps.Stdout)
	}
}
