package pipeline

import (
	"strconv"
	"strings"
)

// ExtractMetric scans a comparison tool's combined output for the scalar
// metric value. ImageMagick's compare prints the value on stderr, e.g.
// "28.31 (0.345)" or "inf"; other tools bury it in a longer line. The first
// token that parses as a float wins. The raw token is returned so the
// report shows exactly what the tool printed.
func ExtractMetric(output string) (string, bool) {
	for _, field := range strings.FieldsFunc(output, isSeparator) {
		if field == "" {
			continue
		}
		// ParseFloat also accepts "inf", which compare prints for
		// identical images.
		if _, err := strconv.ParseFloat(field, 64); err == nil {
			return field, true
		}
	}
	return "", false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '(', ')', ',':
		return true
	}
	return false
}
