package detect

import (
	"context"
	"fmt"
	"strings"

	"nutritrack/internal/llm"
	"nutritrack/internal/model"
)

const visionPrompt = `You are a food recognition system. List every distinct food or dish visible in the image.
Only output a JSON array (no markdown, no extra text) of objects with this exact schema:
[{"label": "<lowercase food name>", "confidence": <number between 0 and 1>}]
Output [] when no food is visible.`

// Vision labels images with an LLM vision model.
type Vision struct {
	client        llm.Client
	model         string
	minConfidence float64
}

func NewVision(client llm.Client, model string, minConfidence float64) *Vision {
	return &Vision{client: client, model: model, minConfidence: minConfidence}
}

func (v *Vision) Name() string { return "llm_vision" }

func (v *Vision) Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error) {
	var raw []model.Detection
	err := v.client.CompleteJSON(ctx, llm.Request{
		Model:     v.model,
		Prompt:    visionPrompt,
		Images:    []llm.Image{{Data: img, ContentType: contentType}},
		MaxTokens: 300,
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("vision detect: %w", err)
	}

	dets := make([]model.Detection, 0, len(raw))
	for _, d := range raw {
		label := strings.ToLower(strings.TrimSpace(d.Label))
		if label == "" {
			continue
		}
		conf := min(max(d.Confidence, 0), 1)
		if conf < v.minConfidence {
			continue
		}
		dets = append(dets, model.Detection{Label: label, Confidence: conf})
	}
	return dets, nil
}
