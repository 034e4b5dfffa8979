package nutrition

import (
	"math"
	"sort"

	"nutritrack/internal/model"
)

// DayTotal is the nutrition consumed on one calendar day.
type DayTotal struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyTotals folds day documents into per-date totals sorted by date.
func DailyTotals(meals []model.Meal) []DayTotal {
	byDate := make(map[string]*DayTotal)
	for _, m := range meals {
		key := m.Date.UTC().Format("2006-01-02")
		d, ok := byDate[key]
		if !ok {
			d = &DayTotal{Date: key}
			byDate[key] = d
		}
		d.Calories += m.Totals.Calories
		d.Protein += m.Totals.Protein
		d.Carbs += m.Totals.Carbo
		d.Fat += m.Totals.Fat
	}
	out := make([]DayTotal, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, DayTotal{
			Date:     d.Date,
			Calories: Round1(d.Calories),
			Protein:  Round1(d.Protein),
			Carbs:    Round1(d.Carbs),
			Fat:      Round1(d.Fat),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func within(v, target, tolerance float64) bool {
	return v >= target*(1-tolerance) && v <= target*(1+tolerance)
}

// GoalsMetPercent scores each day that has calories: one point per goal hit
// (calories and protein within 20%, carbs and fat within 30% of the
// maintenance targets), as a percentage of four. Days are averaged and
// the result rounded. Zero without a TDEE or without data.
func GoalsMetPercent(days []DayTotal, tdee float64) int {
	if tdee <= 0 {
		return 0
	}
	t := TargetsFor(tdee, MaintenanceSplit)

	var sum float64
	var counted int
	for _, d := range days {
		if d.Calories <= 0 {
			continue
		}
		met := 0
		if within(d.Calories, t.Calories, 0.2) {
			met++
		}
		if within(d.Protein, t.Protein, 0.2) {
			met++
		}
		if within(d.Carbs, t.Carbs, 0.3) {
			met++
		}
		if within(d.Fat, t.Fat, 0.3) {
			met++
		}
		sum += float64(met) / 4 * 100
		counted++
	}
	if counted == 0 {
		return 0
	}
	return int(math.Round(sum / float64(counted)))
}

// Averages returns the mean per logged day.
func Averages(days []DayTotal) model.Macros {
	if len(days) == 0 {
		return model.Macros{}
	}
	var m model.Macros
	for _, d := range days {
		m.Calories += d.Calories
		m.Protein += d.Protein
		m.Carbs += d.Carbs
		m.Fat += d.Fat
	}
	n := float64(len(days))
	return model.Macros{
		Calories: Round1(m.Calories / n),
		Protein:  Round1(m.Protein / n),
		Carbs:    Round1(m.Carbs / n),
		Fat:      Round1(m.Fat / n),
	}
}
