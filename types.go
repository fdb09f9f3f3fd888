package md2docx

import (
	"fmt"
	"time"
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)

	// ImageDir receives diagram images as a side channel next to the
	// document. Empty means images are embedded only, from a
	// temporary directory that is cleaned up afterwards.
	ImageDir string
}

// Warning records a recoverable failure from a fallible step. The
// conversion continued with a simpler representation; the warning
// preserves visibility of what degraded.
type Warning struct {
	Stage string // "diagram", "image", "highlight", or a block kind
	Err   error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Stage, w.Err)
}

// Result is the outcome of one conversion.
type Result struct {
	DOCX     []byte    // the serialized document
	Warnings []Warning // degradations encountered, in document order
	Images   []string  // image files written to Input.ImageDir
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout    time.Duration
	presetName string
	configPath string
}

// defaultTimeout bounds a whole conversion, including external
// diagram rendering.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPreset selects a named embedded preset ("legal", "academic",
// "report", "simple").
func WithPreset(name string) Option {
	return func(c *Converter) {
		c.cfg.presetName = name
	}
}

// WithConfigFile loads the typographic configuration from a YAML file
// instead of an embedded preset.
func WithConfigFile(path string) Option {
	return func(c *Converter) {
		c.cfg.configPath = path
	}
}
