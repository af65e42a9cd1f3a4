// Package pipeline drives the per-codec encode, decode, and compare steps.
//
// Codecs run strictly in declaration order, one fully completed before the
// next begins. The whole run is single threaded: the harness blocks on each
// external invocation and consumes its result before the next step starts.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pressley/codecbench/internal/config"
	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/identify"
	"github.com/pressley/codecbench/internal/logging"
	"github.com/pressley/codecbench/internal/naming"
	"github.com/pressley/codecbench/internal/prepare"
	"github.com/pressley/codecbench/internal/reporter"
	"github.com/pressley/codecbench/internal/tool"
	"github.com/pressley/codecbench/internal/util"
)

// Summary aggregates the outcome of a run.
type Summary struct {
	Completed int
	Failed    int
	Total     int
	Elapsed   time.Duration
}

// Runner holds all run-scoped state explicitly: the ordinal counter, its
// padding width, and the source-variant mapping. Nothing here is global.
type Runner struct {
	cfg      *config.Config
	defs     []config.Definition
	variants map[string]string
	run      tool.Runner
	rep      reporter.Reporter
	log      *logging.Logger

	ordinal int
	width   int
}

// New creates a Runner over an already-prepared variant mapping. The
// ordinal starts at 1 and its width is fixed from the definition count so
// output files sort lexicographically in execution order.
func New(cfg *config.Config, defs []config.Definition, variants map[string]string,
	run tool.Runner, rep reporter.Reporter, log *logging.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		defs:     defs,
		variants: variants,
		run:      run,
		rep:      rep,
		log:      log,
		ordinal:  1,
		width:    naming.Width(len(defs)),
	}
}

// Run executes the full benchmark: banner, source preparation, then the
// per-codec pipeline. It is the single entry point used by the CLI and the
// library façade.
func Run(ctx context.Context, cfg *config.Config, defs []config.Definition,
	run tool.Runner, rep reporter.Reporter, log *logging.Logger) (Summary, error) {

	banner := reporter.RunBanner{
		SourceImage: cfg.SourceImage,
		Decoder:     cfg.Decoder,
		Convention:  cfg.DecoderConvention.String(),
		Metric:      cfg.Metric,
		CompareTool: cfg.CompareTool,
		CodecCount:  len(defs),
		Comparison:  cfg.QualityComparison,
	}
	info, probeErr := identify.Probe(ctx, run, cfg.IdentifyTool, cfg.SourceImage)
	if probeErr == nil {
		banner.SourceInfo = info.String()
	}
	rep.RunStarted(banner)
	if probeErr != nil {
		log.Debug("source probe failed: %v", probeErr)
		rep.Warning(fmt.Sprintf("source probe failed: %v", probeErr))
	}

	variants, err := prepare.New(cfg, run, rep, log).Prepare(ctx, defs)
	if err != nil {
		return Summary{Total: len(defs)}, err
	}

	return New(cfg, defs, variants, run, rep, log).Run(ctx)
}

// Run iterates the codec definitions. A failing external invocation aborts
// the remaining steps of that codec only; its captured output is reported
// and the run continues with the next definition. The ordinal advances
// either way, so filenames stay stable across partial failures.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{Total: len(r.defs)}

	for i, def := range r.defs {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, errors.NewCancelledError()
		}

		r.rep.CodecStarted(reporter.CodecHeader{
			Ordinal: naming.Ordinal(r.ordinal, r.width),
			Name:    def.Name,
			Encoder: def.Encoder,
			Index:   i + 1,
			Total:   len(r.defs),
		})

		if r.runCodec(ctx, def) {
			summary.Completed++
		} else {
			summary.Failed++
		}
		r.ordinal++
	}

	summary.Elapsed = time.Since(start)
	r.rep.RunComplete(reporter.RunSummary{
		Completed: summary.Completed,
		Failed:    summary.Failed,
		Total:     summary.Total,
		Elapsed:   summary.Elapsed,
	})
	return summary, nil
}

// runCodec walks one definition through version probe, encode, decode, and
// compare. It reports every result as it is produced and returns false as
// soon as a step fails.
func (r *Runner) runCodec(ctx context.Context, def config.Definition) bool {
	variant := r.variants[def.InputType]

	if def.VersionFlag != "" {
		inv := r.invoke(ctx, def.Encoder, def.VersionFlag)
		// Encoders routinely exit non-zero from their version/help switch;
		// only a failure to launch aborts the codec.
		if inv.Err != nil {
			r.reportFailure("version", inv)
			return false
		}
		r.rep.VersionProbe(reporter.VersionInfo{Name: def.Name, Output: inv.Output})
	}

	encoded := naming.Output(r.ordinal, r.width, def.Name, def.OutputSuffix)
	args := append([]string{variant}, def.ParamArgs()...)
	args = append(args, encoded)
	inv := r.invoke(ctx, def.Encoder, args...)
	if inv.Failed() {
		r.reportFailure("encode", inv)
		return false
	}
	r.rep.StepComplete(reporter.StepOutcome{
		Step:       "encode",
		OutputPath: encoded,
		Size:       r.fileSize(encoded),
		Elapsed:    inv.Duration,
	})

	decoded := naming.Output(r.ordinal, r.width, def.Name, r.cfg.DecodeSuffix)
	inv = r.invoke(ctx, r.cfg.Decoder, decodeArgs(r.cfg.DecoderConvention, encoded, decoded)...)
	if inv.Failed() {
		r.reportFailure("decode", inv)
		return false
	}
	r.rep.StepComplete(reporter.StepOutcome{
		Step:       "decode",
		OutputPath: decoded,
		Size:       r.fileSize(decoded),
		Elapsed:    inv.Duration,
	})

	if !r.cfg.QualityComparison {
		return true
	}

	diff := naming.Diff(r.ordinal, r.width, def.Name, variant, decoded, r.cfg.DiffSuffix)
	inv = r.invoke(ctx, r.cfg.CompareTool, "-metric", r.cfg.Metric, variant, decoded, diff)
	value, ok := ExtractMetric(inv.Output)
	// Compare tools conventionally exit non-zero when the images differ,
	// which is the expected case here. The step counts as failed only when
	// the tool could not run or produced nothing parseable.
	if inv.Err != nil || (inv.Failed() && !ok) {
		r.reportFailure("compare", inv)
		return false
	}
	r.rep.MetricResult(reporter.MetricLine{
		Metric:   r.cfg.Metric,
		Value:    value,
		RefPath:  variant,
		TestPath: decoded,
	})
	return true
}

func (r *Runner) invoke(ctx context.Context, command string, args ...string) tool.Invocation {
	inv := r.run.Run(ctx, command, args...)
	r.log.Debug("exec (%s, exit %d): %s", inv.Duration, inv.ExitCode, inv.CommandLine())
	return inv
}

func (r *Runner) reportFailure(step string, inv tool.Invocation) {
	failure := reporter.ToolFailure{
		Step:     step,
		Command:  inv.CommandLine(),
		ExitCode: inv.ExitCode,
		Output:   inv.Output,
	}
	if inv.Err != nil {
		failure.Reason = inv.Err.Error()
	}
	r.rep.ToolFailure(failure)
}

func (r *Runner) fileSize(name string) uint64 {
	return util.FileSize(filepath.Join(r.cfg.WorkDir, name))
}

// decodeArgs builds the decoder argv for the run-level invocation
// convention.
func decodeArgs(convention config.DecoderConvention, input, output string) []string {
	if convention == config.ConventionFlagged {
		return []string{"-i", input, "-o", output}
	}
	return []string{input, output}
}
