// Package nutrition holds the pure calculations behind profiles, targets and statistics.
package nutrition

import (
	"errors"
	"math"
)

var ErrImplausibleBody = errors.New("height/weight out of plausible range")

// BMI expects height in centimeters and weight in kilograms.
// The result is rounded to one decimal.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrImplausibleBody
	}

	h := heightCm / 100.0
	return Round1(weightKg / (h * h)), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
