package md2docx

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinWorkers ensures at least one conversion runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions; each may spawn a
	// diagram-rendering subprocess (a headless browser under mmdc).
	MaxWorkers = 8

	// cpuDivisor leaves headroom for those child processes.
	cpuDivisor = 2
)

// ResolveWorkers determines how many conversions to run in parallel.
// An explicit positive value wins; otherwise the count derives from
// GOMAXPROCS (adjusted by automaxprocs in containers). A Converter is
// stateless and shared across workers; only the worker count needs
// resolving.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
