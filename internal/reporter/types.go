// Package reporter streams the run report as results are produced.
package reporter

import "time"

// RunBanner describes the run before any work starts.
type RunBanner struct {
	SourceImage string
	SourceInfo  string // probe summary, empty if the probe failed
	Decoder     string
	Convention  string
	Metric      string
	CompareTool string
	CodecCount  int
	Comparison  bool
}

// VariantInfo describes one materialized source variant.
type VariantInfo struct {
	InputType string
	Path      string
	Elapsed   time.Duration
}

// CodecHeader announces the start of one codec's pipeline.
type CodecHeader struct {
	Ordinal string
	Name    string
	Encoder string
	Index   int
	Total   int
}

// VersionInfo carries an encoder's version-probe output, verbatim.
type VersionInfo struct {
	Name   string
	Output string
}

// StepOutcome reports a completed encode or decode step.
type StepOutcome struct {
	Step       string // "encode" or "decode"
	OutputPath string
	Size       uint64
	Elapsed    time.Duration
}

// MetricLine is one comparison result: metric name, scalar value, and the
// two compared file paths.
type MetricLine struct {
	Metric   string
	Value    string
	RefPath  string
	TestPath string
}

// ToolFailure carries the diagnostics of a failed invocation. The captured
// output is reported even though the step failed.
type ToolFailure struct {
	Step     string
	Command  string
	ExitCode int
	Output   string
	Reason   string // start/launch error text, empty for non-zero exits
}

// RunSummary is emitted once when the codec list is exhausted.
type RunSummary struct {
	Completed int
	Failed    int
	Total     int
	Elapsed   time.Duration
}
