package reporter

// Reporter defines the interface for streaming run results. Every method is
// called as soon as the corresponding result exists; nothing is buffered to
// the end of the run.
type Reporter interface {
	RunStarted(banner RunBanner)
	ConversionStarted(total int)
	VariantReady(info VariantInfo)
	ConversionComplete()
	CodecStarted(header CodecHeader)
	VersionProbe(info VersionInfo)
	StepComplete(outcome StepOutcome)
	MetricResult(line MetricLine)
	ToolFailure(failure ToolFailure)
	Warning(message string)
	RunComplete(summary RunSummary)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) RunStarted(RunBanner) {}
func (NullReporter) ConversionStarted(int) {}
func (NullReporter) VariantReady(VariantInfo) {}
func (NullReporter) ConversionComplete() {}
func (NullReporter) CodecStarted(CodecHeader) {}
func (NullReporter) VersionProbe(VersionInfo) {}
func (NullReporter) StepComplete(StepOutcome) {}
func (NullReporter) MetricResult(MetricLine) {}
func (NullReporter) ToolFailure(ToolFailure) {}
func (NullReporter) Warning(string) {}
func (NullReporter) RunComplete(RunSummary) {}
