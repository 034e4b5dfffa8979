package advice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"nutritrack/internal/model"
)

// SystemPrompt is sent as the system message of every advice request.
const SystemPrompt = "You are a professional nutritionist providing personalized advice. Always respond in valid JSON format."

// Prompt renders the advice request for the model. The advice type is decided
// beforehand and the model is told to use it; recent advice is listed so the
// answer does not repeat itself.
func Prompt(s model.NutritionSnapshot, adviceType model.AdviceType, recent []Entry) string {
	u := s.UserInfo
	n := s.NutritionToday

	var b strings.Builder
	b.WriteString("You are a professional nutritionist AI assistant. Analyze the following user data and provide personalized nutrition advice.\n\n")

	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Age: %s years\n", optInt(u.Age))
	fmt.Fprintf(&b, "- Weight: %s kg\n", optFloat(u.Weight))
	fmt.Fprintf(&b, "- Height: %s cm\n", optFloat(u.Height))
	fmt.Fprintf(&b, "- Gender: %s\n", orUnknown(u.Gender))
	fmt.Fprintf(&b, "- Activity Level: %s\n", orUnknown(u.ActivityLevel))
	fmt.Fprintf(&b, "- Goal: %s\n", orUnknown(u.Goal))
	fmt.Fprintf(&b, "- BMI: %s\n", formatNumber(u.BMI))
	fmt.Fprintf(&b, "- TDEE: %s calories\n\n", formatNumber(u.TDEE))

	b.WriteString("Today's Nutrition:\n")
	fmt.Fprintf(&b, "- Consumed: %s\n", macros(model.Macros{Calories: n.TotalCalories, Protein: n.TotalProtein, Carbs: n.TotalCarbs, Fat: n.TotalFats}))
	fmt.Fprintf(&b, "- Targets: %s\n", macros(s.Targets))
	fmt.Fprintf(&b, "- Remaining: %s\n\n", macros(s.Remaining))

	meals, _ := json.Marshal(n.Meals)
	fmt.Fprintf(&b, "Today's Meals: %s\n\n", meals)

	fmt.Fprintf(&b, "The advice_type MUST be %q.\n\n", adviceType)

	if len(recent) > 0 {
		b.WriteString("Recently given advice (do NOT repeat these titles or recipes):\n")
		for _, e := range recent {
			fmt.Fprintf(&b, "- [%s] %s", e.Type, e.Title)
			if e.RecipeName != "" {
				fmt.Fprintf(&b, " (recipe: %s)", e.RecipeName)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(responseFormat)
	return b.String()
}

const responseFormat = `Respond with a single JSON object in this format:
{
  "advice_type": "tips|recipe|warning",
  "title": "Brief title (max 6 words)",
  "message": "Concise main advice message (max 2 sentences)",
  "specific_recommendations": ["Short actionable tip 1 (max 15 words)", "Short actionable tip 2 (max 15 words)"],
  "recipe": {
    "name": "Recipe name (max 4 words)",
    "ingredients": ["ingredient 1", "ingredient 2", "ingredient 3", "ingredient 4"],
    "instructions": ["step 1", "step 2", "step 3"],
    "nutrition": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0}
  },
  "celebration": "Short celebration message (max 10 words)",
  "micro_tip": "One short micro-tip (max 12 words)"
}

RULES:
1. For "recipe" advice include the recipe object, set specific_recommendations to [] and size the recipe to the remaining macros.
2. For "tips" or "warning" advice set recipe to null and give exactly 2 specific_recommendations.
3. Vary titles, messages and micro tips.
4. Keep all text short and mobile-friendly, encouraging and specific.
`

func macros(m model.Macros) string {
	return fmt.Sprintf("%s calories, %sg protein, %sg carbs, %sg fat",
		formatNumber(m.Calories), formatNumber(m.Protein), formatNumber(m.Carbs), formatNumber(m.Fat))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return "unknown"
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return formatNumber(*v)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
