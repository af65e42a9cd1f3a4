// Package codecbench provides a Go library for benchmarking image codecs
// against a common reference image.
//
// Codecbench drives, for each codec in a declarative definition file, an
// external encoder, a shared external decoder, and an external comparison
// tool, streaming a quality metric and producing a visual diff per codec.
//
// Basic usage:
//
//	summary, err := codecbench.Run(ctx, "lena.png", "codecs.yaml",
//	    reporter.NewTerminalReporter(),
//	    codecbench.WithMetric("ssim"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("completed %d/%d codecs\n", summary.Completed, summary.Total)
package codecbench

import (
	"context"

	"github.com/pressley/codecbench/internal/config"
	"github.com/pressley/codecbench/internal/logging"
	"github.com/pressley/codecbench/internal/pipeline"
	"github.com/pressley/codecbench/internal/reporter"
	"github.com/pressley/codecbench/internal/tool"
)

// Summary aggregates the outcome of a run.
type Summary = pipeline.Summary

// Option configures a run.
type Option func(*config.Config)

// WithMetric sets the comparison metric passed to the compare tool.
func WithMetric(metric string) Option {
	return func(c *config.Config) {
		c.Metric = metric
	}
}

// WithoutQualityComparison disables the compare step for every codec: no
// diff images are produced and no metric lines are reported.
func WithoutQualityComparison() Option {
	return func(c *config.Config) {
		c.QualityComparison = false
	}
}

// WithDecoder selects the shared decoder for the run. The decoder's
// invocation convention is derived from its command name.
func WithDecoder(decoder string) Option {
	return func(c *config.Config) {
		c.SetDecoder(decoder)
	}
}

// WithCompareTool sets the external comparison command.
func WithCompareTool(cli string) Option {
	return func(c *config.Config) {
		c.CompareTool = cli
	}
}

// WithConvertTool sets the external image conversion command.
func WithConvertTool(cli string) Option {
	return func(c *config.Config) {
		c.ConvertTool = cli
	}
}

// WithDecodeSuffix sets the extension for decoded rasters.
func WithDecodeSuffix(suffix string) Option {
	return func(c *config.Config) {
		c.DecodeSuffix = suffix
	}
}

// WithDiffSuffix sets the extension for diff images.
func WithDiffSuffix(suffix string) Option {
	return func(c *config.Config) {
		c.DiffSuffix = suffix
	}
}

// WithWorkDir sets the directory where output files accumulate.
func WithWorkDir(dir string) Option {
	return func(c *config.Config) {
		c.WorkDir = dir
	}
}

// WithVerbose enables debug logging.
func WithVerbose() Option {
	return func(c *config.Config) {
		c.Verbose = true
	}
}

// Run benchmarks every codec defined in codecFile against sourceImage,
// streaming results to rep as they are produced. Configuration and
// conversion problems fail the run before any codec executes; individual
// codec failures are reported and skipped, never returned as errors.
func Run(ctx context.Context, sourceImage, codecFile string, rep reporter.Reporter, opts ...Option) (Summary, error) {
	cfg := config.New(sourceImage, codecFile)
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	defs, err := config.LoadDefinitions(cfg.CodecFile)
	if err != nil {
		return Summary{}, err
	}

	if rep == nil {
		rep = reporter.NullReporter{}
	}

	log := logging.New(logging.Config{Verbose: cfg.Verbose})
	run := tool.ExecRunner{Dir: cfg.WorkDir}
	return pipeline.Run(ctx, cfg, defs, run, rep, log)
}
