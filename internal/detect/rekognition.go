package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"nutritrack/internal/config"
	"nutritrack/internal/model"
)

// labelAPI is the subset of the Rekognition client used here.
type labelAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Rekognition labels images with AWS Rekognition DetectLabels.
type Rekognition struct {
	api           labelAPI
	minConfidence float64
	maxLabels     int
}

// NewRekognition loads AWS credentials from the default chain.
func NewRekognition(ctx context.Context, cfg config.DetectionConfig) (*Rekognition, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newRekognition(rekognition.NewFromConfig(awsCfg), cfg), nil
}

func newRekognition(api labelAPI, cfg config.DetectionConfig) *Rekognition {
	maxLabels := cfg.MaxLabels
	if maxLabels <= 0 {
		maxLabels = 10
	}
	return &Rekognition{api: api, minConfidence: cfg.MinConfidence, maxLabels: maxLabels}
}

func (r *Rekognition) Name() string { return "rekognition" }

func (r *Rekognition) Detect(ctx context.Context, img []byte, _ string) ([]model.Detection, error) {
	out, err := r.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img},
		MaxLabels:     aws.Int32(int32(r.maxLabels)),
		MinConfidence: aws.Float32(float32(r.minConfidence * 100)),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition detect labels: %w", err)
	}

	dets := make([]model.Detection, 0, len(out.Labels))
	for _, l := range out.Labels {
		name := strings.TrimSpace(aws.ToString(l.Name))
		if name == "" {
			continue
		}
		conf := float64(aws.ToFloat32(l.Confidence)) / 100
		dets = append(dets, model.Detection{Label: strings.ToLower(name), Confidence: conf})
	}
	return dets, nil
}
