// Package config provides run options and codec definitions for codecbench.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrNoCodecs indicates the codec file defined no codecs.
	ErrNoCodecs = errors.New("no codec definitions")

	// ErrDuplicateName indicates two codec definitions share a name.
	ErrDuplicateName = errors.New("duplicate codec name")

	// ErrMissingField indicates a codec definition omitted a required field.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownInputType indicates an input type outside the supported raster set.
	ErrUnknownInputType = errors.New("unknown input type")

	// ErrInvalidName indicates a codec name unusable in a filename.
	ErrInvalidName = errors.New("invalid codec name")

	// ErrMissingMetric indicates an empty comparison metric name.
	ErrMissingMetric = errors.New("metric name must not be empty")

	// ErrMissingSuffix indicates an empty decode or diff suffix.
	ErrMissingSuffix = errors.New("suffix must not be empty")

	// ErrSourceImage indicates the source image is missing or unreadable.
	ErrSourceImage = errors.New("source image not found")
)
