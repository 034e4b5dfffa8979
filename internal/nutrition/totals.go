package nutrition

import (
	"fmt"

	"nutritrack/internal/model"
)

// SumEntries recomputes day totals from the entries, rounded to one decimal.
func SumEntries(entries []model.MealEntry) model.Totals {
	var t model.Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Fat += e.Fat
		t.Protein += e.Protein
		t.Carbo += e.Carbo
	}
	return model.Totals{
		Calories: Round1(t.Calories),
		Fat:      Round1(t.Fat),
		Protein:  Round1(t.Protein),
		Carbo:    Round1(t.Carbo),
	}
}

// Renumber names entries "Meal 1".."Meal n" in order.
func Renumber(entries []model.MealEntry) {
	for i := range entries {
		entries[i].Name = fmt.Sprintf("Meal %d", i+1)
	}
}
