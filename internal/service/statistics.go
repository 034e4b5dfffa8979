package service

import (
	"context"
	"errors"
	"time"

	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/repository"
)

// Goals reported when the profile has none.
const (
	defaultTDEE = 2000
	defaultGoal = "maintain"
)

// UserGoals is the profile part of the statistics.
type UserGoals struct {
	TDEE          float64  `json:"tdee"`
	Goal          string   `json:"goal"`
	Age           *int     `json:"age"`
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Gender        string   `json:"gender"`
	ActivityLevel string   `json:"activityLevel"`
}

// DateRange bounds the statistics window; both ends are inclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StatisticsSummary is computed from the meals of the window.
type StatisticsSummary struct {
	DailyTotals     []nutrition.DayTotal `json:"dailyTotals"`
	Averages        model.Macros         `json:"averages"`
	Targets         model.Macros         `json:"targets"`
	GoalsMetPercent int                  `json:"goalsMetPercent"`
	DaysLogged      int                  `json:"daysLogged"`
}

// Statistics is the response of StatisticsService.ForUser.
type Statistics struct {
	Meals     []model.Meal      `json:"meals"`
	UserGoals UserGoals         `json:"userGoals"`
	Range     string            `json:"range"`
	DateRange DateRange         `json:"dateRange"`
	Summary   StatisticsSummary `json:"summary"`
}

// StatisticsService aggregates a user's meals over a range.
type StatisticsService interface {
	// ForUser accepts "Week", "30 Days", "60 Days" or "90 Days"; anything else is a week.
	ForUser(ctx context.Context, userID, rangeName string) (*Statistics, error)
}

type statisticsService struct {
	users repository.UserRepository
	meals repository.MealRepository
	now   func() time.Time
}

// NewStatisticsService constructs a new StatisticsService.
func NewStatisticsService(users repository.UserRepository, meals repository.MealRepository) StatisticsService {
	return &statisticsService{users: users, meals: meals, now: time.Now}
}

func (s *statisticsService) ForUser(ctx context.Context, userID, rangeName string) (*Statistics, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	rangeName = nutrition.NormalizeRange(rangeName)
	start, end := nutrition.DayRange(rangeName, s.now())
	meals, err := s.meals.ListByUser(ctx, uid, start, end.Add(time.Millisecond))
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}

	goals := UserGoals{
		TDEE:          u.TDEEOrZero(),
		Goal:          u.Goal,
		Age:           u.Age,
		Weight:        u.Weight,
		Height:        u.Height,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
	}
	if goals.TDEE <= 0 {
		goals.TDEE = defaultTDEE
	}
	if goals.Goal == "" {
		goals.Goal = defaultGoal
	}

	days := nutrition.DailyTotals(meals)
	logged := 0
	for _, d := range days {
		if d.Calories > 0 {
			logged++
		}
	}

	return &Statistics{
		Meals:     meals,
		UserGoals: goals,
		Range:     rangeName,
		DateRange: DateRange{Start: start, End: end},
		Summary: StatisticsSummary{
			DailyTotals:     days,
			Averages:        nutrition.Averages(days),
			Targets:         nutrition.Targets(goals.TDEE, goals.Goal),
			GoalsMetPercent: nutrition.GoalsMetPercent(days, goals.TDEE),
			DaysLogged:      logged,
		},
	}, nil
}
