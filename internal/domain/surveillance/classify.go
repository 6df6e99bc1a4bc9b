package surveillance

import (
	"math"
	"strconv"
	"strings"
)

// CountReadingsAtOrAbove counts readings of readingType whose numeric value is
// >= threshold. Values that are not finite numbers are skipped.
func CountReadingsAtOrAbove(readings []ClinicalReading, readingType string, threshold float64) int {
	n := 0
	for _, r := range readings {
		if r.Type != readingType {
			continue
		}
		v, ok := ParseReadingValue(r.Value)
		if ok && v >= threshold {
			n++
		}
	}
	return n
}

// ParseReadingValue parses a stored reading value, tolerating surrounding
// whitespace.
func ParseReadingValue(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
