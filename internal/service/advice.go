package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nutritrack/internal/advice"
	"nutritrack/internal/imagesearch"
	"nutritrack/internal/llm"
	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/repository"
)

// Advice sources.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// AdviceResult is the generated advice together with the data it was based on.
type AdviceResult struct {
	Snapshot model.NutritionSnapshot
	Advice   model.Advice
	Date     string
	Source   string
}

// AdviceService generates daily nutrition advice.
type AdviceService interface {
	// Generate never fails because of the LLM: deterministic advice is
	// returned instead. Errors come from the user and meal lookups only.
	Generate(ctx context.Context, userID, date string) (*AdviceResult, error)
}

type adviceService struct {
	users   repository.UserRepository
	meals   repository.MealRepository
	client  llm.Client
	model   string
	history advice.History
	images  imagesearch.Searcher
	metrics *Metrics
	now     func() time.Time
}

// NewAdviceService constructs a new AdviceService. images may be nil, recipes
// then keep the default picture.
func NewAdviceService(
	users repository.UserRepository,
	meals repository.MealRepository,
	client llm.Client,
	model string,
	history advice.History,
	images imagesearch.Searcher,
	metrics *Metrics,
) AdviceService {
	return &adviceService{
		users:   users,
		meals:   meals,
		client:  client,
		model:   model,
		history: history,
		images:  images,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *adviceService) Generate(ctx context.Context, userID, date string) (*AdviceResult, error) {
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

	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	meals, err := s.meals.ListByUser(ctx, uid, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	snap := Snapshot(u, meals)
	adviceType := advice.SelectType(snap)

	recent, err := s.history.Recent(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "advice history unavailable", "user_id", userID, "error", err)
	}

	source := SourceLLM
	var a, raw model.Advice
	if err := s.client.CompleteJSON(ctx, llm.Request{
		Model:       s.model,
		System:      advice.SystemPrompt,
		Prompt:      advice.Prompt(snap, adviceType, recent),
		Temperature: 0.7,
		MaxTokens:   1000,
		JSONMode:    true,
	}, &raw); err != nil {
		slog.WarnContext(ctx, "advice generation failed, using fallback", "user_id", userID, "error", err)
		a = advice.Fallback(adviceType, snap)
		source = SourceFallback
	} else {
		a = advice.Normalize(raw, adviceType, snap)
	}

	if a.Recipe != nil {
		a.Recipe.Image = s.recipeImage(ctx, a.Recipe)
	}

	if err := s.history.Remember(ctx, userID, advice.EntryFor(a, s.now().UTC())); err != nil {
		slog.WarnContext(ctx, "advice history not saved", "user_id", userID, "error", err)
	}
	s.metrics.adviceDone(string(a.Type), source)

	return &AdviceResult{
		Snapshot: snap,
		Advice:   a,
		Date:     day.Format("2006-01-02"),
		Source:   source,
	}, nil
}

func (s *adviceService) recipeImage(ctx context.Context, r *model.Recipe) string {
	if s.images == nil {
		if r.Image != "" {
			return r.Image
		}
		return imagesearch.DefaultRecipeImage
	}
	img, err := s.images.Search(ctx, r.Name)
	if err != nil || img == "" {
		return imagesearch.DefaultRecipeImage
	}
	return img
}

// Snapshot summarizes a user and the day documents of one day. TDEE is taken
// from the profile or estimated when it is missing and the profile allows.
func Snapshot(u *model.User, meals []model.Meal) model.NutritionSnapshot {
	info := model.UserInfo{
		Age:           u.Age,
		Weight:        u.Weight,
		Height:        u.Height,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
		Goal:          u.Goal,
		TDEE:          u.TDEEOrZero(),
	}
	if u.BMI != nil {
		info.BMI = *u.BMI
	} else if u.Weight != nil && u.Height != nil {
		if bmi, err := nutrition.BMI(*u.Height, *u.Weight); err == nil {
			info.BMI = bmi
		}
	}
	if info.TDEE <= 0 {
		if prof, ok := profileOf(u); ok {
			if tdee, err := nutrition.TDEE(prof); err == nil {
				info.TDEE = tdee
			}
		}
	}

	today := model.NutritionToday{Meals: []model.MealDetail{}}
	for _, m := range meals {
		for _, e := range m.MealsList {
			today.TotalCalories += e.Calories
			today.TotalProtein += e.Protein
			today.TotalCarbs += e.Carbo
			today.TotalFats += e.Fat
			today.Meals = append(today.Meals, model.MealDetail{
				Name:     e.Name,
				Time:     e.Time.UTC().Format("15:04"),
				Calories: e.Calories,
				Protein:  e.Protein,
				Carbs:    e.Carbo,
				Fat:      e.Fat,
				Items:    e.Items,
			})
		}
	}
	today.TotalCalories = nutrition.Round1(today.TotalCalories)
	today.TotalProtein = nutrition.Round1(today.TotalProtein)
	today.TotalCarbs = nutrition.Round1(today.TotalCarbs)
	today.TotalFats = nutrition.Round1(today.TotalFats)

	snap := model.NutritionSnapshot{UserInfo: info, NutritionToday: today}
	if info.TDEE > 0 {
		snap.Targets = nutrition.Targets(info.TDEE, info.Goal)
		snap.Remaining = nutrition.Remaining(snap.Targets, model.Macros{
			Calories: today.TotalCalories,
			Protein:  today.TotalProtein,
			Carbs:    today.TotalCarbs,
			Fat:      today.TotalFats,
		})
	}
	return snap
}
