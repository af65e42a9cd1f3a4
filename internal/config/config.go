package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pressley/codecbench/internal/errors"
	"github.com/pressley/codecbench/internal/util"
)

// Default constants
const (
	// DefaultMetric is the comparison metric passed to the compare tool.
	DefaultMetric = "psnr"

	// DefaultDecoder is the shared decoder applied to every codec's bitstream.
	DefaultDecoder = "j2k_to_image"

	// DefaultConvertTool materializes source variants.
	DefaultConvertTool = "magick"

	// DefaultCompareCommand is used when CompareEnvVar is unset.
	DefaultCompareCommand = "compare"

	// CompareEnvVar names the environment variable that overrides the
	// default compare tool.
	CompareEnvVar = "CODECBENCH_COMPARE"

	// DefaultIdentifyTool probes the source image for the run banner.
	DefaultIdentifyTool = "identify"

	// DefaultDecodeSuffix is the extension for decoded rasters.
	DefaultDecodeSuffix = "tif"

	// DefaultDiffSuffix is the extension for diff images.
	DefaultDiffSuffix = "tif"

	// SourceBitDepth is the bit depth every source variant is normalized to.
	SourceBitDepth = 12
)

// DecoderConvention selects how the shared decoder takes its input and
// output paths. It is a run-level choice, never per-codec.
type DecoderConvention int

const (
	// ConventionPositional invokes the decoder as "decoder <input> <output>".
	ConventionPositional DecoderConvention = iota
	// ConventionFlagged invokes the decoder as "decoder -i <input> -o <output>".
	ConventionFlagged
)

// String returns a short description of the convention.
func (c DecoderConvention) String() string {
	if c == ConventionFlagged {
		return "-i input -o output"
	}
	return "input output"
}

// DetectConvention picks the invocation convention from the decoder command
// name. The OpenJPEG decoders take flagged arguments; everything else is
// assumed positional.
func DetectConvention(decoder string) DecoderConvention {
	base := strings.TrimSuffix(filepath.Base(decoder), ".exe")
	switch base {
	case "j2k_to_image", "opj_decompress":
		return ConventionFlagged
	}
	return ConventionPositional
}

// DefaultCompareTool resolves the compare tool from the environment,
// falling back to the plain "compare" command.
func DefaultCompareTool() string {
	if cli := os.Getenv(CompareEnvVar); cli != "" {
		return cli
	}
	return DefaultCompareCommand
}

// Config contains the run-level options. It is built once before the run
// and is immutable afterwards.
type Config struct {
	// SourceImage is the caller-supplied reference image.
	SourceImage string

	// CodecFile is the YAML file listing codec definitions.
	CodecFile string

	// Metric is the comparison metric name passed to the compare tool.
	Metric string

	// QualityComparison enables the compare step; disabling it suppresses
	// diff files and metric lines for every codec.
	QualityComparison bool

	// Decoder is the shared decoder command for the whole run.
	Decoder string

	// DecoderConvention is how the decoder takes input/output paths.
	DecoderConvention DecoderConvention

	// CompareTool is the external comparison command.
	CompareTool string

	// ConvertTool is the external image conversion command.
	ConvertTool string

	// IdentifyTool probes the source image for the banner; probe failure
	// is non-fatal.
	IdentifyTool string

	// DecodeSuffix is the extension for decoded rasters.
	DecodeSuffix string

	// DiffSuffix is the extension for diff images.
	DiffSuffix string

	// WorkDir is where all output files accumulate. The harness assumes
	// exclusive use of it for the duration of the run and never cleans up.
	WorkDir string

	// Verbose enables debug logging.
	Verbose bool
}

// New creates a Config with defaults applied.
func New(sourceImage, codecFile string) *Config {
	decoder := DefaultDecoder
	return &Config{
		SourceImage:       sourceImage,
		CodecFile:         codecFile,
		Metric:            DefaultMetric,
		QualityComparison: true,
		Decoder:           decoder,
		DecoderConvention: DetectConvention(decoder),
		CompareTool:       DefaultCompareTool(),
		ConvertTool:       DefaultConvertTool,
		IdentifyTool:      DefaultIdentifyTool,
		DecodeSuffix:      DefaultDecodeSuffix,
		DiffSuffix:        DefaultDiffSuffix,
		WorkDir:           ".",
	}
}

// SetDecoder sets the decoder and re-derives its invocation convention.
func (c *Config) SetDecoder(decoder string) {
	c.Decoder = decoder
	c.DecoderConvention = DetectConvention(decoder)
}

// Validate checks the run options. The tools run with WorkDir as their
// working directory, so the source image is resolved to an absolute path
// here.
func (c *Config) Validate() error {
	if c.Metric == "" {
		return ErrMissingMetric
	}
	if c.DecodeSuffix == "" || c.DiffSuffix == "" {
		return ErrMissingSuffix
	}

	abs, err := filepath.Abs(c.SourceImage)
	if err != nil {
		return errors.NewPathError(c.SourceImage, err)
	}
	if !util.FileExists(abs) {
		return errors.NewPathError(abs, ErrSourceImage)
	}
	c.SourceImage = abs

	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if err := util.EnsureDirectory(c.WorkDir); err != nil {
		return errors.NewIOError("failed to create work directory", err)
	}
	return nil
}
