package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, unit := range []string{MPS, MPH, KMPH, KPH} {
		assert.True(t, IsValid(unit), unit)
	}

	for _, unit := range []string{"", "knots", "KMPH"} {
		assert.False(t, IsValid(unit), unit)
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		unit string
		mps  float64
		want float64
	}{
		{MPS, 1, 1},
		{MPH, 1, 2.2369362920544},
		{KMPH, 1, 3.6},
		{KPH, 5, 18},
		{"furlongs", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			assert.InDelta(t, tt.want, ConvertSpeed(tt.mps, tt.unit), 1e-10)
		})
	}
}

func TestSpeed(t *testing.T) {
	assert.InDelta(t, 36.0, Speed(10, 1, KMPH), 1e-10)
	assert.InDelta(t, 5.0, Speed(10, 2, MPS), 1e-10)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "km/h", Label(KPH))
	assert.Equal(t, "km/h", Label(KMPH))
	assert.Equal(t, "mph", Label(MPH))
	assert.Equal(t, "m/s", Label(MPS))
	assert.Equal(t, "m/s", Label(""))
}
