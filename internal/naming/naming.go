// Package naming computes the output filenames for a benchmark run.
//
// Every function here is a pure function of its arguments. Codec names are
// unique within a run (enforced at config load) and ordinals are never
// reused, so every filename produced during one run is unique. Re-running
// with an identical codec list overwrites the previous run's outputs.
package naming

import "fmt"

// Width returns the number of decimal digits in n. It sets the zero-padding
// width for ordinals so that output files sort lexicographically in
// execution order.
func Width(n int) int {
	if n < 0 {
		n = -n
	}
	width := 1
	for n >= 10 {
		n /= 10
		width++
	}
	return width
}

// Ordinal renders n zero-padded to width digits.
func Ordinal(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// Source returns the filename of the converted source variant for an
// input type, e.g. "source.ppm".
func Source(inputType string) string {
	return "source." + inputType
}

// Output returns the per-codec output filename: <ordinal>-<name>.<suffix>.
// The same scheme names both the encoded bitstream and the decoded raster,
// differing only in suffix.
func Output(ordinal, width int, name, suffix string) string {
	return fmt.Sprintf("%s-%s.%s", Ordinal(ordinal, width), name, suffix)
}

// Diff returns the diff-image filename contrasting refFile against
// testFile: <ordinal>-diff--<name>--<refFile>__<testFile>--.<suffix>.
func Diff(ordinal, width int, name, refFile, testFile, suffix string) string {
	return fmt.Sprintf("%s-diff--%s--%s__%s--.%s",
		Ordinal(ordinal, width), name, refFile, testFile, suffix)
}
