package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutritrack/internal/llm"
	"nutritrack/internal/model"
	"nutritrack/internal/repository"
)

// FoodService resolves nutrition values per 100 g, asking the LLM only on a cache miss.
type FoodService interface {
	// Lookup reports created=true when the food was fetched and stored by this call.
	Lookup(ctx context.Context, name string) (*model.Food, bool, error)
}

type foodService struct {
	foods  repository.FoodRepository
	client llm.Client
	model  string
	now    func() time.Time
}

// NewFoodService constructs a new FoodService.
func NewFoodService(foods repository.FoodRepository, client llm.Client, model string) FoodService {
	return &foodService{foods: foods, client: client, model: model, now: time.Now}
}

const foodPrompt = `You are a registered nutritionist. Given the food name %q, provide its nutritional values normalized to 100 g.
Only output a single, valid JSON object with exactly these keys:
{
  "name": "<string: the food name>",
  "unit": "<\"piece\" or \"gram\">",
  "piece_avg_weight": <number|null: grams in one piece; null if unit is "gram">,
  "avg_gram": <number|null: typical serving size in grams; null if unit is "piece">,
  "cal": <number: kcal per 100 g>,
  "protein": <number: g protein per 100 g>,
  "fat": <number: g fat per 100 g>,
  "carbohydrates": <number: g carbs per 100 g>
}`

type foodReply struct {
	Name           string   `json:"name"`
	Unit           string   `json:"unit"`
	PieceAvgWeight *float64 `json:"piece_avg_weight"`
	AvgGram        *float64 `json:"avg_gram"`
	Calories       float64  `json:"cal"`
	Protein        float64  `json:"protein"`
	Fat            float64  `json:"fat"`
	Carbohydrates  float64  `json:"carbohydrates"`
}

func (r foodReply) validate() error {
	if r.Unit != model.UnitPiece && r.Unit != model.UnitGram {
		return fmt.Errorf("unexpected unit %q", r.Unit)
	}
	if r.Calories < 0 || r.Protein < 0 || r.Fat < 0 || r.Carbohydrates < 0 {
		return errors.New("negative nutrient value")
	}
	return nil
}

func (s *foodService) Lookup(ctx context.Context, name string) (*model.Food, bool, error) {
	name = strings.TrimSpace(name)
	key := strings.ToLower(name)
	if key == "" {
		return nil, false, ErrFoodNameRequired
	}

	if f, err := s.foods.FindByKey(ctx, key); err == nil {
		return f, false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("find food: %w", err)
	}

	var reply foodReply
	if err := s.client.CompleteJSON(ctx, llm.Request{
		Model:       s.model,
		Prompt:      fmt.Sprintf(foodPrompt, name),
		Temperature: 0,
		MaxTokens:   300,
		JSONMode:    true,
	}, &reply); err != nil {
		return nil, false, fmt.Errorf("%w: food lookup: %w", ErrUpstream, err)
	}
	reply.Unit = strings.ToLower(strings.TrimSpace(reply.Unit))
	if err := reply.validate(); err != nil {
		return nil, false, fmt.Errorf("%w: food lookup: %w", ErrUpstream, err)
	}

	f, err := s.foods.Create(ctx, &model.Food{
		Key:            key,
		Name:           name,
		Unit:           reply.Unit,
		PieceAvgWeight: reply.PieceAvgWeight,
		AvgGram:        reply.AvgGram,
		Calories:       reply.Calories,
		Protein:        reply.Protein,
		Fat:            reply.Fat,
		Carbohydrates:  reply.Carbohydrates,
		CreatedAt:      s.now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// a concurrent lookup stored it first
		existing, findErr := s.foods.FindByKey(ctx, key)
		if findErr != nil {
			return nil, false, fmt.Errorf("find food: %w", findErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create food: %w", err)
	}
	return f, true, nil
}
