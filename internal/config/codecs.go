package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pressley/codecbench/internal/errors"
)

// InputTypes is the set of raster formats an encoder may request as its
// source variant.
var InputTypes = map[string]bool{
	"ppm": true,
	"pgm": true,
	"pnm": true,
	"bmp": true,
	"tif": true,
	"tga": true,
	"png": true,
}

// Definition describes how to invoke one codec's encoder and how to name
// its outputs. Definitions are executed in declaration order.
type Definition struct {
	// Name uniquely identifies the codec within a run; it appears in every
	// output filename and report line.
	Name string `yaml:"name"`

	// Encoder is the external encoder command.
	Encoder string `yaml:"encoder"`

	// VersionFlag, when set, is passed to the encoder to print its version
	// before encoding. Empty means no version probe.
	VersionFlag string `yaml:"version_flag,omitempty"`

	// InputType is the source format the encoder accepts (one of InputTypes).
	InputType string `yaml:"input_type"`

	// OutputSuffix is the extension of the encoded bitstream.
	OutputSuffix string `yaml:"output_suffix"`

	// Params holds additional encoder arguments, passed through verbatim.
	Params string `yaml:"params,omitempty"`
}

// ParamArgs splits Params into argv entries. The content is opaque to the
// harness; only whitespace splitting is applied.
func (d Definition) ParamArgs() []string {
	return strings.Fields(d.Params)
}

// codecFile is the YAML document shape.
type codecFile struct {
	Codecs []Definition `yaml:"codecs"`
}

// LoadDefinitions parses the codec definition file, preserving declaration
// order. All schema violations are detected here, before any external tool
// is invoked.
func LoadDefinitions(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("failed to read codec file", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions parses and validates codec definitions from YAML bytes.
func ParseDefinitions(data []byte) ([]Definition, error) {
	var file codecFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.WrapConfigError("failed to parse codec file", err)
	}

	if len(file.Codecs) == 0 {
		return nil, ErrNoCodecs
	}

	seen := make(map[string]bool, len(file.Codecs))
	for i, def := range file.Codecs {
		if err := validateDefinition(i, def); err != nil {
			return nil, err
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		seen[def.Name] = true
	}

	return file.Codecs, nil
}

func validateDefinition(index int, def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("codec #%d: %w: name", index+1, ErrMissingField)
	}
	if strings.ContainsAny(def.Name, "/\\ ") {
		return fmt.Errorf("codec %q: %w: must not contain spaces or path separators", def.Name, ErrInvalidName)
	}
	if def.Encoder == "" {
		return fmt.Errorf("codec %q: %w: encoder", def.Name, ErrMissingField)
	}
	if def.InputType == "" {
		return fmt.Errorf("codec %q: %w: input_type", def.Name, ErrMissingField)
	}
	if !InputTypes[def.InputType] {
		return fmt.Errorf("codec %q: %w: %q", def.Name, ErrUnknownInputType, def.InputType)
	}
	if def.OutputSuffix == "" {
		return fmt.Errorf("codec %q: %w: output_suffix", def.Name, ErrMissingField)
	}
	return nil
}
