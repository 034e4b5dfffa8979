package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealEntry is one logged meal inside a day document.
type MealEntry struct {
	Name     string    `json:"name" bson:"name"`
	Time     time.Time `json:"time" bson:"time"`
	Calories float64   `json:"calories" bson:"calories"`
	Fat      float64   `json:"fat" bson:"fat"`
	Protein  float64   `json:"protein" bson:"protein"`
	Carbo    float64   `json:"carbo" bson:"carbo"`
	ImageURI string    `json:"imageUri,omitempty" bson:"imageUri,omitempty"`
	Items    string    `json:"items,omitempty" bson:"items,omitempty"`
}

// Totals are the day aggregates stored next to the entries.
type Totals struct {
	Calories float64 `json:"totalCalories" bson:"totalCalories"`
	Fat      float64 `json:"totalFat" bson:"totalFat"`
	Protein  float64 `json:"totalProtein" bson:"totalProtein"`
	Carbo    float64 `json:"totalCarbo" bson:"totalCarbo"`
}

// Meal is the per-user, per-day document. Date is always UTC midnight
// and (UserID, Date) is unique.
type Meal struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Date      time.Time          `json:"date" bson:"date"`
	Totals    `bson:",inline"`
	MealsList []MealEntry `json:"mealsList" bson:"mealsList"`
}

// MealUpdate replaces the nutrient values of a single entry.
type MealUpdate struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbo    float64 `json:"carbo"`
	Fat      float64 `json:"fat"`
	Items    string  `json:"items"`
}
