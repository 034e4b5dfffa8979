package nutrition

import (
	"errors"
	"math"
	"strings"
)

var activityFactors = map[string]float64{
	"sedentary":         1.2,
	"lightly active":    1.375,
	"moderately active": 1.55,
	"very active":       1.725,
	"extra active":      1.9,
}

var ErrIncompleteProfile = errors.New("age, weight, height and gender are required")

// Profile is the subset of a user needed for energy estimates.
type Profile struct {
	Age           int
	WeightKg      float64
	HeightCm      float64
	Gender        string
	ActivityLevel string
}

// ActivityFactor maps an activity level to its multiplier.
// Unknown levels fall back to sedentary. Underscores and hyphens are accepted.
func ActivityFactor(level string) float64 {
	key := strings.ToLower(strings.TrimSpace(level))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	if f, ok := activityFactors[key]; ok {
		return f
	}
	switch key {
	case "light", "lightly":
		return activityFactors["lightly active"]
	case "moderate", "moderately":
		return activityFactors["moderately active"]
	case "active", "very":
		return activityFactors["very active"]
	case "extra", "extremely active":
		return activityFactors["extra active"]
	}
	return activityFactors["sedentary"]
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(p Profile) (float64, error) {
	if p.Age <= 0 || p.WeightKg <= 0 || p.HeightCm <= 0 {
		return 0, ErrIncompleteProfile
	}
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch strings.ToLower(p.Gender) {
	case "male", "m":
		return base + 5, nil
	case "female", "f":
		return base - 161, nil
	default:
		return 0, ErrIncompleteProfile
	}
}

// TDEE is BMR times the activity factor, rounded to whole kcal.
func TDEE(p Profile) (float64, error) {
	bmr, err := BMR(p)
	if err != nil {
		return 0, err
	}
	return math.Round(bmr * ActivityFactor(p.ActivityLevel)), nil
}
