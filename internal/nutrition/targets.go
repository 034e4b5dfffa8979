package nutrition

import (
	"math"
	"strings"

	"nutritrack/internal/model"
)

// Goal kinds derived from free-text goals.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// GoalKind classifies a free-text goal.
func GoalKind(goal string) string {
	g := strings.ToLower(goal)
	switch {
	case strings.Contains(g, "lose") || strings.Contains(g, "weight loss"):
		return GoalLose
	case strings.Contains(g, "gain") || strings.Contains(g, "muscle") || strings.Contains(g, "bulk"):
		return GoalGain
	default:
		return GoalMaintain
	}
}

// Split is the share of calories from protein, carbs and fat.
type Split struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// MaintenanceSplit is also used for goals-met scoring regardless of goal.
var MaintenanceSplit = Split{Protein: 0.30, Carbs: 0.40, Fat: 0.30}

// MacroSplit returns the calorie split for a goal.
func MacroSplit(goal string) Split {
	switch GoalKind(goal) {
	case GoalLose:
		return Split{Protein: 0.35, Carbs: 0.35, Fat: 0.30}
	case GoalGain:
		return Split{Protein: 0.30, Carbs: 0.45, Fat: 0.25}
	default:
		return MaintenanceSplit
	}
}

// TargetsFor converts a calorie budget into gram targets (4 kcal/g for
// protein and carbs, 9 kcal/g for fat). A zero budget yields zero targets.
func TargetsFor(tdee float64, s Split) model.Macros {
	if tdee <= 0 {
		return model.Macros{}
	}
	return model.Macros{
		Calories: tdee,
		Protein:  math.Round(tdee * s.Protein / 4),
		Carbs:    math.Round(tdee * s.Carbs / 4),
		Fat:      math.Round(tdee * s.Fat / 9),
	}
}

// Targets applies the goal's split.
func Targets(tdee float64, goal string) model.Macros {
	return TargetsFor(tdee, MacroSplit(goal))
}

// Remaining is target minus consumed, clamped at zero per field.
// Remaining calories are zero when there is no calorie target.
func Remaining(target, consumed model.Macros) model.Macros {
	r := model.Macros{
		Protein: math.Max(0, target.Protein-consumed.Protein),
		Carbs:   math.Max(0, target.Carbs-consumed.Carbs),
		Fat:     math.Max(0, target.Fat-consumed.Fat),
	}
	if target.Calories > 0 {
		r.Calories = math.Max(0, target.Calories-consumed.Calories)
	}
	return r
}
