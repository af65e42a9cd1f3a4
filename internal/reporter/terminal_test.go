package reporter

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// captureStdout collects what fn prints to os.Stdout. Colored section
// headers bypass os.Stdout, so assertions stick to the plain detail lines.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	noColor := color.NoColor
	color.NoColor = true

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	color.NoColor = noColor

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestCodecStartedShowsOrdinalPrefix(t *testing.T) {
	rep := NewTerminalReporter()
	out := captureStdout(t, func() {
		rep.CodecStarted(CodecHeader{
			Ordinal: "01",
			Name:    "jasper",
			Encoder: "jasper_enc",
			Index:   1,
			Total:   12,
		})
	})

	if !strings.Contains(out, "01-jasper.*") {
		t.Errorf("output should name the 01-jasper file prefix:\n%s", out)
	}
	if !strings.Contains(out, "jasper_enc") {
		t.Errorf("output should name the encoder:\n%s", out)
	}
}

func TestMetricResultUnparsedValue(t *testing.T) {
	rep := NewTerminalReporter()
	out := captureStdout(t, func() {
		rep.MetricResult(MetricLine{
			Metric:   "psnr",
			Value:    "",
			RefPath:  "source.ppm",
			TestPath: "1-ref.tif",
		})
	})

	if !strings.Contains(out, "unparsed") {
		t.Errorf("empty metric value should render as unparsed:\n%s", out)
	}
	if !strings.Contains(out, "source.ppm") || !strings.Contains(out, "1-ref.tif") {
		t.Errorf("metric line should carry both compared paths:\n%s", out)
	}
}

func TestWarning(t *testing.T) {
	rep := NewTerminalReporter()
	out := captureStdout(t, func() {
		rep.Warning("source probe failed: identify exited with code 1")
	})

	if !strings.Contains(out, "source probe failed") {
		t.Errorf("warning text missing:\n%s", out)
	}
}
