package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/repository"
)

// AddMealsInput appends entries to the day document of Date.
type AddMealsInput struct {
	UserID  string
	Date    string
	Entries []model.MealEntry
}

// EntryChange is the state of a day after an entry was edited or removed.
type EntryChange struct {
	Entries []model.MealEntry `json:"updatedMealsList"`
	Totals  model.Totals      `json:"totals"`
}

// MealService defines the meal logging use cases.
type MealService interface {
	// Add creates the day document on first use and accumulates totals,
	// so posting twice on the same day sums both posts.
	Add(ctx context.Context, in AddMealsInput) (*model.Meal, error)

	// ListByDay returns the day documents of date (YYYY-MM-DD); today when empty.
	ListByDay(ctx context.Context, userID, date string) ([]model.Meal, error)

	UpdateEntry(ctx context.Context, userID, mealID, entryName string, upd model.MealUpdate) (*EntryChange, error)

	// DeleteEntry removes the named entry and renames the rest "Meal 1".."Meal n".
	DeleteEntry(ctx context.Context, userID, mealID, entryName string) (*EntryChange, error)
}

type mealService struct {
	meals repository.MealRepository
	now   func() time.Time
}

// NewMealService constructs a new MealService.
func NewMealService(meals repository.MealRepository) MealService {
	return &mealService{meals: meals, now: time.Now}
}

func (s *mealService) Add(ctx context.Context, in AddMealsInput) (*model.Meal, error) {
	uid, err := parseID(in.UserID)
	if err != nil {
		return nil, err
	}
	day, err := nutrition.ParseDay(in.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entries := make([]model.MealEntry, len(in.Entries))
	for i, e := range in.Entries {
		if e.Time.IsZero() {
			e.Time = s.now().UTC()
		}
		entries[i] = e
	}

	meal, err := s.meals.AppendEntries(ctx, uid, day, entries, nutrition.SumEntries(entries))
	if err != nil {
		return nil, fmt.Errorf("append meals: %w", err)
	}
	return meal, nil
}

func (s *mealService) ListByDay(ctx context.Context, userID, date string) ([]model.Meal, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	day := nutrition.StartOfDay(s.now())
	if date != "" {
		if day, err = nutrition.ParseDay(date); err != nil {
			return nil, ErrInvalidDate
		}
	}

	meals, err := s.meals.ListByUser(ctx, uid, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	return meals, nil
}

func (s *mealService) owned(ctx context.Context, userID, mealID string) (*model.Meal, error) {
	uid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	mid, err := parseID(mealID)
	if err != nil {
		return nil, err
	}
	meal, err := s.meals.FindOwned(ctx, mid, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

func (s *mealService) replace(ctx context.Context, meal *model.Meal, entries []model.MealEntry) (*EntryChange, error) {
	totals := nutrition.SumEntries(entries)
	if err := s.meals.ReplaceEntries(ctx, meal.ID, entries, totals); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("replace entries: %w", err)
	}
	return &EntryChange{Entries: entries, Totals: totals}, nil
}

func (s *mealService) UpdateEntry(ctx context.Context, userID, mealID, entryName string, upd model.MealUpdate) (*EntryChange, error) {
	meal, err := s.owned(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	entries := append([]model.MealEntry(nil), meal.MealsList...)
	found := false
	for i := range entries {
		if entries[i].Name != entryName {
			continue
		}
		entries[i].Calories = nutrition.Round1(upd.Calories)
		entries[i].Protein = nutrition.Round1(upd.Protein)
		entries[i].Carbo = nutrition.Round1(upd.Carbo)
		entries[i].Fat = nutrition.Round1(upd.Fat)
		entries[i].Items = upd.Items
		found = true
		break
	}
	if !found {
		return nil, ErrEntryNotFound
	}
	return s.replace(ctx, meal, entries)
}

func (s *mealService) DeleteEntry(ctx context.Context, userID, mealID, entryName string) (*EntryChange, error) {
	meal, err := s.owned(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	kept := make([]model.MealEntry, 0, len(meal.MealsList))
	for _, e := range meal.MealsList {
		if e.Name != entryName {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(meal.MealsList) {
		return nil, ErrEntryNotFound
	}
	nutrition.Renumber(kept)
	return s.replace(ctx, meal, kept)
}
