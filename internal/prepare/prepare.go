// Package prepare materializes the source-format variants a run requires.
package prepare

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pressley/codecbench/internal/config"
	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/logging"
	"github.com/pressley/codecbench/internal/naming"
	"github.com/pressley/codecbench/internal/reporter"
	"github.com/pressley/codecbench/internal/tool"
	"github.com/pressley/codecbench/internal/util"
)

// RequiredTypes returns the distinct input types requested across all
// definitions, in first-appearance order. Codecs sharing a type share one
// converted file.
func RequiredTypes(defs []config.Definition) []string {
	seen := make(map[string]bool, len(defs))
	var types []string
	for _, def := range defs {
		if !seen[def.InputType] {
			seen[def.InputType] = true
			types = append(types, def.InputType)
		}
	}
	return types
}

// Preparer converts the source image into one file per required type.
type Preparer struct {
	cfg *config.Config
	run tool.Runner
	rep reporter.Reporter
	log *logging.Logger
}

// New creates a Preparer.
func New(cfg *config.Config, run tool.Runner, rep reporter.Reporter, log *logging.Logger) *Preparer {
	return &Preparer{cfg: cfg, run: run, rep: rep, log: log}
}

// Prepare produces one converted file per distinct required type and
// returns the type→filename mapping used by every later step. Filenames
// are relative to the work directory, where all tools run. Any conversion
// failure is fatal: the run cannot proceed without every variant.
func (p *Preparer) Prepare(ctx context.Context, defs []config.Definition) (map[string]string, error) {
	types := RequiredTypes(defs)
	p.rep.ConversionStarted(len(types))

	variants := make(map[string]string, len(types))
	for _, inputType := range types {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewCancelledError()
		}

		name := naming.Source(inputType)
		inv := p.run.Run(ctx, p.cfg.ConvertTool,
			p.cfg.SourceImage, "-depth", strconv.Itoa(config.SourceBitDepth), name)
		p.log.Debug("convert: %s", inv.CommandLine())

		if inv.Failed() {
			var underlying error
			if inv.Err != nil {
				underlying = errors.NewCommandStartError(inv.Command, inv.Err)
			} else {
				underlying = errors.NewCommandFailedError(inv.Command, inv.ExitCode, inv.Output)
			}
			return nil, errors.NewConversionError(inputType, underlying)
		}
		if !util.FileExists(filepath.Join(p.cfg.WorkDir, name)) {
			return nil, errors.NewConversionError(inputType,
				fmt.Errorf("conversion produced no %s", name))
		}

		variants[inputType] = name
		p.rep.VariantReady(reporter.VariantInfo{
			InputType: inputType,
			Path:      name,
			Elapsed:   inv.Duration,
		})
	}

	p.rep.ConversionComplete()
	return variants, nil
}
