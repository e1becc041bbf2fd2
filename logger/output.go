package logger

// OutputCategory defines a category of output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Written files, check verdicts
	OutputErrors                        // Errors with hints

	// Level 1 (-v) - Informational
	OutputProgress // Per-module progress
	OutputConfig   // Config values loaded and their sources

	// Level 2 (-vv) - Detailed
	OutputTiming    // Per-module render timing
	OutputDiscovery // Description files matched by include globs
	OutputFormatter // External formatter invocations

	// Level 3 (-vvv) - Full dump
	OutputSource // Rendered TypeScript before it is written
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:   VerbosityUser,
	OutputErrors:    VerbosityUser,
	OutputProgress:  VerbosityInfo,
	OutputConfig:    VerbosityInfo,
	OutputTiming:    VerbosityDebug,
	OutputDiscovery: VerbosityDebug,
	OutputFormatter: VerbosityDebug,
	OutputSource:    VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:   "results",
	OutputErrors:    "errors",
	OutputProgress:  "progress",
	OutputConfig:    "config",
	OutputTiming:    "timing",
	OutputDiscovery: "discovery",
	OutputFormatter: "formatter",
	OutputSource:    "source",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
