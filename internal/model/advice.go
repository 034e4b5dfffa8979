package model

// AdviceType selects the shape of generated advice.
type AdviceType string

const (
	AdviceTips    AdviceType = "tips"
	AdviceRecipe  AdviceType = "recipe"
	AdviceWarning AdviceType = "warning"
)

// RecipeNutrition is the macro breakdown of a suggested recipe.
type RecipeNutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is attached to advice of type recipe.
type Recipe struct {
	Image        string          `json:"image"`
	Name         string          `json:"name"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Nutrition    RecipeNutrition `json:"nutrition"`
}

// Advice is the structured nutrition advice returned to clients.
// Recipe advice carries a recipe and no recommendations; tips and warnings
// carry exactly two recommendations and no recipe.
type Advice struct {
	Type                    AdviceType `json:"advice_type"`
	Title                   string     `json:"title"`
	Message                 string     `json:"message"`
	SpecificRecommendations []string   `json:"specific_recommendations"`
	Recipe                  *Recipe    `json:"recipe"`
	Celebration             string     `json:"celebration"`
	MicroTip                string     `json:"micro_tip"`
}

// UserInfo is the profile part of an advice snapshot.
type UserInfo struct {
	Age           *int     `json:"age"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activity_level"`
	Goal          string   `json:"goal"`
	BMI           float64  `json:"bmi"`
	TDEE          float64  `json:"tdee"`
}

// MealDetail is a flattened meal entry given to the advisor.
type MealDetail struct {
	Name     string  `json:"name"`
	Time     string  `json:"time"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Items    string  `json:"items"`
}

// NutritionToday is what the user consumed on the requested day.
type NutritionToday struct {
	TotalCalories float64      `json:"total_calories"`
	TotalProtein  float64      `json:"total_protein"`
	TotalCarbs    float64      `json:"total_carbs"`
	TotalFats     float64      `json:"total_fats"`
	Meals         []MealDetail `json:"meals"`
}

// Macros is a calorie and macronutrient quadruple in kcal and grams.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionSnapshot is the input of advice generation.
type NutritionSnapshot struct {
	UserInfo       UserInfo       `json:"user_info"`
	NutritionToday NutritionToday `json:"nutrition_today"`
	Targets        Macros         `json:"targets"`
	Remaining      Macros         `json:"remaining"`
}
