// Package detect finds food labels in images. Detectors are tried in order
// so a managed vision model can be backed by an LLM.
package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	_ "golang.org/x/image/webp"

	"nutritrack/internal/model"
)

var (
	ErrNoDetector   = errors.New("detect: no detector configured")
	ErrInvalidImage = errors.New("detect: image cannot be decoded")
)

// Detector labels the contents of an image.
type Detector interface {
	Name() string
	Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error)
}

// ValidateImage decodes the image header (gif, jpeg, png or webp) and
// returns its format name.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return "", ErrInvalidImage
	}
	return format, nil
}

// Chain runs detectors in order and returns the first non-empty result.
type Chain struct {
	detectors []Detector
}

// NewChain skips nil detectors so optional ones can be passed unconditionally.
func NewChain(detectors ...Detector) *Chain {
	c := &Chain{}
	for _, d := range detectors {
		if d != nil {
			c.detectors = append(c.detectors, d)
		}
	}
	return c
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Detect(ctx context.Context, img []byte, contentType string) ([]model.Detection, error) {
	dets, _, err := c.Run(ctx, img, contentType)
	return dets, err
}

// Run also reports which detector produced the result. An empty result from
// every detector is not an error; the last error is returned only when all failed.
func (c *Chain) Run(ctx context.Context, img []byte, contentType string) ([]model.Detection, string, error) {
	if len(c.detectors) == 0 {
		return nil, "", ErrNoDetector
	}

	var (
		lastErr  error
		anyEmpty bool
		source   string
	)
	for _, d := range c.detectors {
		dets, err := d.Detect(ctx, img, contentType)
		if err != nil {
			slog.WarnContext(ctx, "detector failed, trying next",
				"component", "detect",
				"detector", d.Name(),
				"error", err,
			)
			lastErr = err
			continue
		}
		if len(dets) > 0 {
			return dets, d.Name(), nil
		}
		anyEmpty = true
		source = d.Name()
	}

	if anyEmpty {
		return []model.Detection{}, source, nil
	}
	return nil, "", fmt.Errorf("all detectors failed: %w", lastErr)
}
