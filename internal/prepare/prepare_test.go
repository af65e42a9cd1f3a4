package prepare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pressley/codecbench/internal/config"
	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/logging"
	"github.com/pressley/codecbench/internal/reporter"
	"github.com/pressley/codecbench/internal/tool"
)

func defsWithTypes(types ...string) []config.Definition {
	defs := make([]config.Definition, len(types))
	for i, t := range types {
		defs[i] = config.Definition{
			Name:         "codec" + string(rune('a'+i)),
			Encoder:      "enc",
			InputType:    t,
			OutputSuffix: "j2k",
		}
	}
	return defs
}

func TestRequiredTypes(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{"single", []string{"ppm"}, []string{"ppm"}},
		{"deduplicated", []string{"tif", "tif"}, []string{"tif"}},
		{"order preserved", []string{"tif", "ppm", "tif", "pgm", "ppm"}, []string{"tif", "ppm", "pgm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredTypes(defsWithTypes(tt.types...))
			if len(got) != len(tt.want) {
				t.Fatalf("RequiredTypes() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("RequiredTypes()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// convertRunner fakes the conversion tool: it records invocations and
// creates the output file named by the final argument.
type convertRunner struct {
	dir   string
	calls [][]string
	fail  bool
}

func (r *convertRunner) Run(_ context.Context, command string, args ...string) tool.Invocation {
	r.calls = append(r.calls, append([]string{command}, args...))
	if r.fail {
		return tool.Invocation{Command: command, Args: args, ExitCode: 1, Output: "convert: no decode delegate"}
	}
	out := args[len(args)-1]
	_ = os.WriteFile(filepath.Join(r.dir, out), []byte("raster"), 0644)
	return tool.Invocation{Command: command, Args: args, Output: ""}
}

func newTestConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "lena.png")
	if err := os.WriteFile(src, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New(src, "codecs.yaml")
	cfg.WorkDir = dir
	return cfg, dir
}

func TestPrepareDeduplicatesConversions(t *testing.T) {
	cfg, dir := newTestConfig(t)
	run := &convertRunner{dir: dir}
	p := New(cfg, run, reporter.NullReporter{}, logging.Discard())

	defs := defsWithTypes("tif", "tif", "ppm")
	variants, err := p.Prepare(context.Background(), defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two distinct types, two conversions, regardless of three codecs.
	if len(run.calls) != 2 {
		t.Fatalf("got %d conversion calls, want 2", len(run.calls))
	}
	if variants["tif"] != "source.tif" || variants["ppm"] != "source.ppm" {
		t.Errorf("unexpected variant mapping: %v", variants)
	}

	// The conversion normalizes to 12 bits per channel.
	first := run.calls[0]
	wantArgs := []string{cfg.ConvertTool, cfg.SourceImage, "-depth", "12", "source.tif"}
	if len(first) != len(wantArgs) {
		t.Fatalf("argv = %v, want %v", first, wantArgs)
	}
	for i := range wantArgs {
		if first[i] != wantArgs[i] {
			t.Errorf("argv[%d] = %q, want %q", i, first[i], wantArgs[i])
		}
	}
}

func TestPrepareWritesVariantFiles(t *testing.T) {
	cfg, dir := newTestConfig(t)
	run := &convertRunner{dir: dir}
	p := New(cfg, run, reporter.NullReporter{}, logging.Discard())

	if _, err := p.Prepare(context.Background(), defsWithTypes("ppm")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "source.ppm")); err != nil {
		t.Errorf("expected source.ppm to exist: %v", err)
	}
}

func TestPrepareFailsWhenConversionFails(t *testing.T) {
	cfg, dir := newTestConfig(t)
	run := &convertRunner{dir: dir, fail: true}
	p := New(cfg, run, reporter.NullReporter{}, logging.Discard())

	_, err := p.Prepare(context.Background(), defsWithTypes("ppm"))
	if !errors.IsKind(err, errors.KindConversion) {
		t.Errorf("error = %v, want KindConversion", err)
	}
}

// missingOutputRunner exits cleanly but never writes the expected file.
type missingOutputRunner struct{}

func (missingOutputRunner) Run(_ context.Context, command string, args ...string) tool.Invocation {
	return tool.Invocation{Command: command, Args: args}
}

func TestPrepareFailsWhenOutputMissing(t *testing.T) {
	cfg, _ := newTestConfig(t)
	p := New(cfg, missingOutputRunner{}, reporter.NullReporter{}, logging.Discard())

	_, err := p.Prepare(context.Background(), defsWithTypes("ppm"))
	if !errors.IsKind(err, errors.KindConversion) {
		t.Errorf("error = %v, want KindConversion", err)
	}
}
