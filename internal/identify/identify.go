// Package identify probes the source image with ImageMagick's identify tool.
//
// The probe only feeds the run banner; a failing probe never stops a run.
package identify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/tool"
)

// formatSpec asks identify for format, geometry, and channel depth.
const formatSpec = "%m %w %h %z"

// Info describes the probed source image.
type Info struct {
	Format string
	Width  int
	Height int
	Depth  int
}

// String renders the info for the run banner, e.g. "PNG 512x384 8-bit".
func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d %d-bit", i.Format, i.Width, i.Height, i.Depth)
}

// Probe runs identify against path and parses the result.
func Probe(ctx context.Context, run tool.Runner, command, path string) (Info, error) {
	inv := run.Run(ctx, command, "-format", formatSpec, path)
	if inv.Err != nil {
		return Info{}, errors.NewProbeError("identify did not run", inv.Err)
	}
	if inv.ExitCode != 0 {
		return Info{}, errors.NewProbeError(
			fmt.Sprintf("identify exited with code %d", inv.ExitCode), nil)
	}
	return Parse(inv.Output)
}

// Parse extracts Info from identify's formatted output. Multi-frame images
// repeat the format line; only the first frame is considered.
func Parse(output string) (Info, error) {
	line := strings.TrimSpace(output)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Info{}, errors.NewProbeError(
			fmt.Sprintf("unexpected identify output %q", line), nil)
	}

	width, err := strconv.Atoi(fields[1])
	if err != nil {
		return Info{}, errors.NewProbeError("bad width in identify output", err)
	}
	height, err := strconv.Atoi(fields[2])
	if err != nil {
		return Info{}, errors.NewProbeError("bad height in identify output", err)
	}
	depth, err := strconv.Atoi(fields[3])
	if err != nil {
		return Info{}, errors.NewProbeError("bad depth in identify output", err)
	}

	return Info{
		Format: fields[0],
		Width:  width,
		Height: height,
		Depth:  depth,
	}, nil
}
