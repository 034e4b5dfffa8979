// Package advice holds the rules behind generated nutrition advice: which kind
// of advice a day calls for, the shape every answer must have, and the
// deterministic answer used when the model is unavailable.
package advice

import (
	"math"
	"strings"

	"nutritrack/internal/model"
)

const (
	// warningMargin is how far past the calorie target a day must go to warrant a warning.
	warningMargin = 200.0
	// recipeThreshold is the remaining calorie budget that warrants a recipe.
	recipeThreshold = 300.0
	// lowMacroRatio marks a macro as low when less than this share of its target was eaten.
	lowMacroRatio = 0.5
)

// SelectType picks the advice type for a snapshot. Warnings take precedence
// over recipes; a snapshot without a calorie target always gets tips.
func SelectType(s model.NutritionSnapshot) model.AdviceType {
	target := s.Targets.Calories
	if target <= 0 {
		return model.AdviceTips
	}

	eaten := s.NutritionToday
	if eaten.TotalCalories >= target+warningMargin {
		return model.AdviceWarning
	}
	if s.Remaining.Calories > recipeThreshold {
		return model.AdviceRecipe
	}
	if isLow(eaten.TotalProtein, s.Targets.Protein) ||
		isLow(eaten.TotalCarbs, s.Targets.Carbs) ||
		isLow(eaten.TotalFats, s.Targets.Fat) {
		return model.AdviceRecipe
	}
	return model.AdviceTips
}

func isLow(consumed, target float64) bool {
	return target > 0 && consumed < target*lowMacroRatio
}

var defaultRecommendations = map[model.AdviceType][]string{
	model.AdviceTips: {
		"Drink a glass of water with every meal.",
		"Add a portion of vegetables to your next meal.",
	},
	model.AdviceWarning: {
		"Choose a light, vegetable-based dinner tonight.",
		"Take a 20-minute walk to balance today's intake.",
	},
}

const (
	defaultCelebration = "Every logged meal counts!"
	defaultMicroTip    = "Eat slowly; fullness takes about 20 minutes."
)

// Normalize enforces the response shape for adviceType: recipe advice
// carries a recipe and no recommendations, other types carry exactly two
// recommendations and no recipe. Missing text is filled from defaults.
func Normalize(a model.Advice, adviceType model.AdviceType, s model.NutritionSnapshot) model.Advice {
	fb := Fallback(adviceType, s)
	a.Type = adviceType

	if strings.TrimSpace(a.Title) == "" {
		a.Title = fb.Title
	}
	if strings.TrimSpace(a.Message) == "" {
		a.Message = fb.Message
	}
	if strings.TrimSpace(a.Celebration) == "" {
		a.Celebration = fb.Celebration
	}
	if strings.TrimSpace(a.MicroTip) == "" {
		a.MicroTip = fb.MicroTip
	}

	if adviceType == model.AdviceRecipe {
		a.SpecificRecommendations = []string{}
		if a.Recipe == nil || strings.TrimSpace(a.Recipe.Name) == "" {
			a.Recipe = fb.Recipe
		}
		if a.Recipe.Ingredients == nil {
			a.Recipe.Ingredients = []string{}
		}
		if a.Recipe.Instructions == nil {
			a.Recipe.Instructions = []string{}
		}
		return a
	}

	a.Recipe = nil
	recs := make([]string, 0, 2)
	for _, r := range a.SpecificRecommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
		if len(recs) == 2 {
			break
		}
	}
	for _, d := range defaultRecommendations[adviceType] {
		if len(recs) == 2 {
			break
		}
		recs = append(recs, d)
	}
	a.SpecificRecommendations = recs
	return a
}

// Fallback builds deterministic advice from the snapshot alone.
func Fallback(adviceType model.AdviceType, s model.NutritionSnapshot) model.Advice {
	eaten := s.NutritionToday.TotalCalories
	target := s.Targets.Calories

	a := model.Advice{
		Type:        adviceType,
		Celebration: defaultCelebration,
		MicroTip:    defaultMicroTip,
	}

	switch adviceType {
	case model.AdviceWarning:
		a.Title = "Over Today's Target"
		a.Message = "You are " + kcal(eaten-target) + " over your " + kcal(target) +
			" target today. Keep the rest of the day light."
		a.SpecificRecommendations = append([]string(nil), defaultRecommendations[model.AdviceWarning]...)
	case model.AdviceRecipe:
		a.Title = "Refuel With a Balanced Meal"
		a.Message = "You still have " + kcal(s.Remaining.Calories) +
			" left today. This meal helps close the gap."
		a.SpecificRecommendations = []string{}
		a.Recipe = fallbackRecipe(s.Remaining)
	default:
		a.Type = model.AdviceTips
		a.Title = "Keep Up the Balance"
		if target > 0 {
			a.Message = "You have eaten " + kcal(eaten) + " of your " + kcal(target) + " target. Nice and steady."
		} else {
			a.Message = "Complete your profile to get targets tailored to you."
		}
		a.SpecificRecommendations = append([]string(nil), defaultRecommendations[model.AdviceTips]...)
	}
	return a
}

// fallbackRecipe is sized to the remaining budget, capped at a regular meal.
func fallbackRecipe(remaining model.Macros) *model.Recipe {
	const mealCap = 650.0
	cal := math.Min(math.Max(remaining.Calories, 350), mealCap)
	return &model.Recipe{
		Name:        "Chicken Quinoa Bowl",
		Ingredients: []string{"grilled chicken breast", "cooked quinoa", "roasted vegetables", "olive oil and lemon"},
		Instructions: []string{
			"Grill the chicken and slice it.",
			"Roast the vegetables with a little olive oil.",
			"Serve over quinoa with a squeeze of lemon.",
		},
		Nutrition: model.RecipeNutrition{
			Calories: math.Round(cal),
			Protein:  math.Round(cal * 0.30 / 4),
			Carbs:    math.Round(cal * 0.40 / 4),
			Fat:      math.Round(cal * 0.30 / 9),
		},
	}
}

func kcal(v float64) string {
	return formatNumber(math.Round(math.Abs(v))) + " kcal"
}
