package utils

import (
	"math"

	"github.com/fhsmendes/skycast/models"
)

const absoluteZeroC = 273.15

// ConvertTemperatures derives whole-degree Celsius and Fahrenheit from kelvin.
// Rounding is math.Round, half away from zero. Fahrenheit is computed from the
// rounded Celsius value.
func ConvertTemperatures(kelvin float64) models.Temperature {
	celsius := math.Round(kelvin - absoluteZeroC)
	fahrenheit := math.Round(celsius*9/5 + 32)

	return models.Temperature{
		Celsius:    int(celsius),
		Fahrenheit: int(fahrenheit),
	}
}
