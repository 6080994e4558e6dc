package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lw2die/vitalis/schema"
)

// TestParseBoolString tests boolean flag parsing.
func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestRoundTo tests decimal rounding.
func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 1.2, RoundTo(1.24, 1), 0.001)
	assert.InDelta(t, 1.3, RoundTo(1.25, 1), 0.001)
	assert.InDelta(t, 108.33, RoundTo(108.3333, 2), 0.001)
	assert.InDelta(t, 108.0, RoundTo(108.3333, 0), 0.001)
	assert.InDelta(t, -1.3, RoundTo(-1.26, 1), 0.001)
}

// TestClamp tests interval limiting.
func TestClamp(t *testing.T) {
	assert.InDelta(t, 5.0, Clamp(5, 0, 10), 0.001)
	assert.InDelta(t, 0.0, Clamp(-3, 0, 10), 0.001)
	assert.InDelta(t, 10.0, Clamp(42, 0, 10), 0.001)
}

// TestMean tests the arithmetic mean.
func TestMean(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 0.001)
	assert.InDelta(t, 7.5, Mean([]float64{7.5}), 0.001)
}

// TestPtrOr tests optional float resolution.
func TestPtrOr(t *testing.T) {
	v := 42.0
	assert.InDelta(t, 42.0, PtrOr(&v, 7), 0.001)
	assert.InDelta(t, 7.0, PtrOr(nil, 7), 0.001)
}

// TestGetPlainLabel tests the composite score bands.
func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, ExcellentValue, GetPlainLabel(90))
	assert.Equal(t, ExcellentValue, GetPlainLabel(85))
	assert.Equal(t, GoodValue, GetPlainLabel(70))
	assert.Equal(t, AcceptableValue, GetPlainLabel(55))
	assert.Equal(t, PoorValue, GetPlainLabel(54))
}

// TestGetSeverityLabel tests severity rendering without colors.
func TestGetSeverityLabel(t *testing.T) {
	assert.Equal(t, "CRITICAL", GetSeverityLabel(schema.SeverityCritical, false))
	assert.Equal(t, "GOOD", GetSeverityLabel(schema.SeverityGood, false))
}
