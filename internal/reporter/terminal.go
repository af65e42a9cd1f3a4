package reporter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/pressley/codecbench/internal/util"
)

// TerminalReporter outputs a human-friendly report to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		fmt.Println()
		r.progress = nil
	}
}

func (r *TerminalReporter) RunStarted(banner RunBanner) {
	fmt.Println()
	_, _ = r.cyan.Println("RUN")
	const w = 12
	source := banner.SourceImage
	if banner.SourceInfo != "" {
		source = fmt.Sprintf("%s (%s)", source, banner.SourceInfo)
	}
	r.printLabel(w, "Source:", source)
	r.printLabel(w, "Decoder:", fmt.Sprintf("%s (%s)", banner.Decoder, banner.Convention))
	if banner.Comparison {
		r.printLabel(w, "Metric:", strings.ToUpper(banner.Metric))
		r.printLabel(w, "Compare:", banner.CompareTool)
	} else {
		r.printLabel(w, "Metric:", color.New(color.Faint).Sprint("quality comparison disabled"))
	}
	r.printLabel(w, "Codecs:", fmt.Sprintf("%d", banner.CodecCount))
}

func (r *TerminalReporter) ConversionStarted(total int) {
	fmt.Println()
	_, _ = r.cyan.Println("SOURCE VARIANTS")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("  converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) VariantReady(info VariantInfo) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
	r.mu.Unlock()
}

func (r *TerminalReporter) ConversionComplete() {
	r.mu.Lock()
	bar := r.progress
	r.progress = nil
	r.mu.Unlock()
	if bar != nil {
		_ = bar.Finish()
		_ = bar.Clear()
	}
	fmt.Printf("  %s variants ready\n", r.green.Sprint("✓"))
}

func (r *TerminalReporter) CodecStarted(header CodecHeader) {
	fmt.Println()
	_, _ = r.cyan.Printf("CODEC %d/%d — %s\n", header.Index, header.Total, header.Name)
	r.printLabel(10, "Encoder:", header.Encoder)
	r.printLabel(10, "Outputs:", header.Ordinal+"-"+header.Name+".*")
}

func (r *TerminalReporter) VersionProbe(info VersionInfo) {
	fmt.Printf("  %s %s\n", r.bold.Sprint("Version:"), firstLine(info.Output))
	for _, line := range restLines(info.Output) {
		fmt.Printf("           %s\n", line)
	}
}

func (r *TerminalReporter) StepComplete(outcome StepOutcome) {
	label := stepLabel(outcome.Step) + ":"
	detail := fmt.Sprintf("%s (%s, %s)",
		outcome.OutputPath,
		util.FormatElapsed(outcome.Elapsed),
		util.FormatBytes(outcome.Size))
	fmt.Printf("  %s %s %s\n", r.bold.Sprintf("%-8s", label), r.green.Sprint("✓"), detail)
}

func (r *TerminalReporter) MetricResult(line MetricLine) {
	value := line.Value
	if value == "" {
		value = r.yellow.Sprint("unparsed")
	}
	fmt.Printf("  %s %s  %s  %s\n",
		r.bold.Sprintf("%-8s", strings.ToUpper(line.Metric)+":"),
		r.magenta.Sprint(value),
		line.RefPath,
		line.TestPath)
}

func (r *TerminalReporter) ToolFailure(failure ToolFailure) {
	fmt.Printf("  %s %s %s", r.bold.Sprintf("%-8s", stepLabel(failure.Step)+":"),
		r.red.Sprint("✗"), failure.Command)
	if failure.Reason != "" {
		fmt.Printf(" (%s)", failure.Reason)
	} else {
		fmt.Printf(" (exit %d)", failure.ExitCode)
	}
	fmt.Println()
	for _, line := range allLines(failure.Output) {
		fmt.Printf("    %s\n", color.New(color.Faint).Sprint(line))
	}
}

func (r *TerminalReporter) Warning(message string) {
	r.finishProgress()
	fmt.Printf("  %s %s\n", r.yellow.Sprint("!"), message)
}

func (r *TerminalReporter) RunComplete(summary RunSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("SUMMARY")
	const w = 11
	status := r.green.Sprintf("%d/%d", summary.Completed, summary.Total)
	if summary.Failed > 0 {
		status = fmt.Sprintf("%s (%s)", status, r.red.Sprintf("%d failed", summary.Failed))
	}
	r.printLabel(w, "Codecs:", status)
	r.printLabel(w, "Elapsed:", util.FormatElapsed(summary.Elapsed))
}

// stepLabel capitalizes an ASCII step name for display.
func stepLabel(step string) string {
	if step == "" {
		return step
	}
	return strings.ToUpper(step[:1]) + step[1:]
}

func firstLine(s string) string {
	lines := allLines(s)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func restLines(s string) []string {
	lines := allLines(s)
	if len(lines) <= 1 {
		return nil
	}
	return lines[1:]
}

func allLines(s string) []string {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		out = append(out, strings.TrimRight(line, "\r"))
	}
	return out
}
