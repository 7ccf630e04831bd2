package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Rounding follows math.Round: halves go away from zero.
func TestConvertTemperatures(t *testing.T) {
	tests := []struct {
		name      string
		kelvin    float64
		expectedC int
		expectedF int
	}{
		{"warm day", 300.15, 27, 81},
		{"mild day", 288.15, 15, 59},
		{"freezing point", 273.15, 0, 32},
		{"very cold temperature", 233.15, -40, -40},
		{"absolute zero", 0, -273, -459},
		{"just above freezing", 273.75, 1, 34},
		{"just below freezing", 272.55, -1, 30},
		{"fraction below half rounds down", 293.49, 20, 68},
		{"fraction above half rounds up", 293.81, 21, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertTemperatures(tt.kelvin)

			assert.Equal(t, tt.expectedC, result.Celsius, "celsius for %v K", tt.kelvin)
			assert.Equal(t, tt.expectedF, result.Fahrenheit, "fahrenheit for %v K", tt.kelvin)
		})
	}
}

func TestConvertTemperatures_Idempotent(t *testing.T) {
	for _, kelvin := range []float64{0, 255.37, 288.15, 300.15, 310.93} {
		first := ConvertTemperatures(kelvin)
		second := ConvertTemperatures(kelvin)
		assert.Equal(t, first, second)
	}
}
