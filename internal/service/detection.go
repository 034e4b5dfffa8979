package service

import (
	"context"
	"fmt"

	"nutritrack/internal/detect"
	"nutritrack/internal/model"
)

// DetectionRunner runs detectors in order and names the one that answered.
// *detect.Chain satisfies it.
type DetectionRunner interface {
	Run(ctx context.Context, img []byte, contentType string) ([]model.Detection, string, error)
}

// DetectionService finds food labels in an image.
type DetectionService interface {
	Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error)
}

type detectionService struct {
	runner  DetectionRunner
	metrics *Metrics
}

// NewDetectionService constructs a new DetectionService.
func NewDetectionService(runner DetectionRunner, metrics *Metrics) DetectionService {
	return &detectionService{runner: runner, metrics: metrics}
}

func (s *detectionService) Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error) {
	if _, err := detect.ValidateImage(img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	dets, source, err := s.runner.Run(ctx, img, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: detect: %w", ErrUpstream, err)
	}
	if source == "" {
		source = "none"
	}
	s.metrics.detected(source)

	if dets == nil {
		dets = []model.Detection{}
	}
	return dets, nil
}
