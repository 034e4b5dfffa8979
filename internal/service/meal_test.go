package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
	"nutritrack/internal/repository"
	repoMocks "nutritrack/internal/repository/mocks"
)

func newTestMealService(meals *repoMocks.MockMealRepository) *mealService {
	svc := NewMealService(meals).(*mealService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestMealService_Add(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()
	day := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	breakfast := time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		in         AddMealsInput
		setupMocks func(meals *repoMocks.MockMealRepository)
		wantErr    error
	}{
		{
			name: "totals come from the entries",
			in: AddMealsInput{
				UserID: uid.Hex(),
				Date:   "2024-05-09T23:30:00+02:00",
				Entries: []model.MealEntry{
					{Name: "Meal 1", Time: breakfast, Calories: 250.04, Protein: 10, Carbo: 30.06, Fat: 8},
					{Name: "Meal 2", Calories: 100, Protein: 5.5, Carbo: 12, Fat: 3.25},
				},
			},
			setupMocks: func(meals *repoMocks.MockMealRepository) {
				meals.On("AppendEntries", ctx, uid, day, mock.MatchedBy(func(entries []model.MealEntry) bool {
					return len(entries) == 2 && entries[0].Time.Equal(breakfast) && entries[1].Time.Equal(fixedNow)
				}), model.Totals{Calories: 350, Protein: 15.5, Carbo: 42.1, Fat: 11.3}).
					Return(&model.Meal{ID: primitive.NewObjectID(), UserID: uid, Date: day}, nil)
			},
		},
		{
			name:       "invalid user id",
			in:         AddMealsInput{UserID: "x", Date: "2024-05-09"},
			setupMocks: func(meals *repoMocks.MockMealRepository) {},
			wantErr:    ErrInvalidID,
		},
		{
			name:       "invalid date",
			in:         AddMealsInput{UserID: uid.Hex(), Date: "09/05/2024"},
			setupMocks: func(meals *repoMocks.MockMealRepository) {},
			wantErr:    ErrInvalidDate,
		},
		{
			name: "repository error",
			in:   AddMealsInput{UserID: uid.Hex(), Date: "2024-05-09", Entries: []model.MealEntry{{Name: "Meal 1"}}},
			setupMocks: func(meals *repoMocks.MockMealRepository) {
				meals.On("AppendEntries", ctx, uid, day, mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("append meals: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meals := new(repoMocks.MockMealRepository)
			tt.setupMocks(meals)

			meal, err := newTestMealService(meals).Add(ctx, tt.in)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.NotNil(t, meal)
			case errors.Is(tt.wantErr, ErrInvalidID), errors.Is(tt.wantErr, ErrInvalidDate):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			meals.AssertExpectations(t)
		})
	}
}

func TestMealService_ListByDay(t *testing.T) {
	ctx := context.Background()
	uid := primitive.NewObjectID()

	t.Run("explicit date", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		meals.On("ListByUser", ctx, uid, from, from.Add(24*time.Hour)).
			Return([]model.Meal{{UserID: uid, Date: from}}, nil)

		got, err := newTestMealService(meals).ListByDay(ctx, uid.Hex(), "2024-05-01")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		meals.AssertExpectations(t)
	})

	t.Run("defaults to today and never returns nil", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		meals.On("ListByUser", ctx, uid, today, today.Add(24*time.Hour)).Return(nil, nil)

		got, err := newTestMealService(meals).ListByDay(ctx, uid.Hex(), "")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := newTestMealService(new(repoMocks.MockMealRepository)).ListByDay(ctx, uid.Hex(), "tomorrow")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func dayWithEntries(id, uid primitive.ObjectID) *model.Meal {
	return &model.Meal{
		ID:     id,
		UserID: uid,
		MealsList: []model.MealEntry{
			{Name: "Meal 1", Calories: 300, Protein: 20, Carbo: 30, Fat: 10},
			{Name: "Meal 2", Calories: 500, Protein: 25, Carbo: 60, Fat: 15},
			{Name: "Meal 3", Calories: 200, Protein: 5, Carbo: 20, Fat: 9},
		},
		Totals: model.Totals{Calories: 1000, Protein: 50, Carbo: 110, Fat: 34},
	}
}

func TestMealService_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	uid, mid := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("rounds values and recomputes totals", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(dayWithEntries(mid, uid), nil)
		meals.On("ReplaceEntries", ctx, mid, mock.MatchedBy(func(entries []model.MealEntry) bool {
			e := entries[1]
			return len(entries) == 3 && e.Name == "Meal 2" && e.Calories == 420.6 && e.Protein == 30.1 && e.Items == "rice, chicken"
		}), model.Totals{Calories: 920.6, Protein: 55.1, Carbo: 100, Fat: 31}).Return(nil)

		res, err := newTestMealService(meals).UpdateEntry(ctx, uid.Hex(), mid.Hex(), "Meal 2", model.MealUpdate{
			Calories: 420.55, Protein: 30.14, Carbo: 50, Fat: 12, Items: "rice, chicken",
		})
		require.NoError(t, err)
		assert.Equal(t, 920.6, res.Totals.Calories)
		assert.Len(t, res.Entries, 3)
		meals.AssertExpectations(t)
	})

	t.Run("unknown entry", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(dayWithEntries(mid, uid), nil)

		_, err := newTestMealService(meals).UpdateEntry(ctx, uid.Hex(), mid.Hex(), "Snack", model.MealUpdate{})
		assert.ErrorIs(t, err, ErrEntryNotFound)
		meals.AssertNotCalled(t, "ReplaceEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("meal of another user", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(nil, repository.ErrNotFound)

		_, err := newTestMealService(meals).UpdateEntry(ctx, uid.Hex(), mid.Hex(), "Meal 1", model.MealUpdate{})
		assert.ErrorIs(t, err, ErrMealNotFound)
	})

	t.Run("invalid meal id", func(t *testing.T) {
		_, err := newTestMealService(new(repoMocks.MockMealRepository)).UpdateEntry(ctx, uid.Hex(), "bad", "Meal 1", model.MealUpdate{})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMealService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	uid, mid := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("renumbers remaining entries", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(dayWithEntries(mid, uid), nil)
		meals.On("ReplaceEntries", ctx, mid, mock.MatchedBy(func(entries []model.MealEntry) bool {
			return len(entries) == 2 &&
				entries[0].Name == "Meal 1" && entries[0].Calories == 300 &&
				entries[1].Name == "Meal 2" && entries[1].Calories == 200
		}), model.Totals{Calories: 500, Protein: 25, Carbo: 50, Fat: 19}).Return(nil)

		res, err := newTestMealService(meals).DeleteEntry(ctx, uid.Hex(), mid.Hex(), "Meal 2")
		require.NoError(t, err)
		assert.Equal(t, []string{"Meal 1", "Meal 2"}, []string{res.Entries[0].Name, res.Entries[1].Name})
		meals.AssertExpectations(t)
	})

	t.Run("unknown entry", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(dayWithEntries(mid, uid), nil)

		_, err := newTestMealService(meals).DeleteEntry(ctx, uid.Hex(), mid.Hex(), "Meal 9")
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("document vanished before write", func(t *testing.T) {
		meals := new(repoMocks.MockMealRepository)
		meals.On("FindOwned", ctx, mid, uid).Return(dayWithEntries(mid, uid), nil)
		meals.On("ReplaceEntries", ctx, mid, mock.Anything, mock.Anything).Return(repository.ErrNotFound)

		_, err := newTestMealService(meals).DeleteEntry(ctx, uid.Hex(), mid.Hex(), "Meal 1")
		assert.ErrorIs(t, err, ErrMealNotFound)
	})
}
