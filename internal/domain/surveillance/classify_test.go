package surveillance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func temperatures(values ...string) []ClinicalReading {
	out := make([]ClinicalReading, len(values))
	for i, v := range values {
		out[i] = ClinicalReading{Type: ReadingTypeTemperature, Value: v}
	}
	return out
}

func TestParseReadingValue(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"39", 39, true},
		{"39.5", 39.5, true},
		{" 40.1 ", 40.1, true},
		{"-1", -1, true},
		{"1e1", 10, true},
		{"", 0, false},
		{"abc", 0, false},
		{"39,5", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseReadingValue(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCountReadingsAtOrAbove(t *testing.T) {
	readings := append(temperatures("39", "39.5", "40", "38.9", "39.1", "febril", ""),
		ClinicalReading{Type: "pressao", Value: "120"},
		ClinicalReading{Type: "Temperatura", Value: "41"},
	)

	assert.Equal(t, 4, CountReadingsAtOrAbove(readings, ReadingTypeTemperature, HighTemperature))
	assert.Equal(t, 1, CountReadingsAtOrAbove(readings, "pressao", 100))
	assert.Equal(t, 0, CountReadingsAtOrAbove(nil, ReadingTypeTemperature, HighTemperature))
}

func TestCountReadingsAtOrAbove_ThresholdInclusive(t *testing.T) {
	assert.Equal(t, 1, CountReadingsAtOrAbove(temperatures("39"), ReadingTypeTemperature, 39))
	assert.Equal(t, 1, CountReadingsAtOrAbove(temperatures("39.0"), ReadingTypeTemperature, 39))
	assert.Equal(t, 0, CountReadingsAtOrAbove(temperatures("38.99"), ReadingTypeTemperature, 39))
}
