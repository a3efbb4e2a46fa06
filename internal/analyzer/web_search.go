package analyzer

import (
	"context"
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/sirupsen/logrus"

	apperrors "go-image-fraud-analyzer/internal/errors"
	"go-image-fraud-analyzer/internal/logger"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/internal/visionclient"
	"go-image-fraud-analyzer/pkg/models"
)

// WebSearchStrategy probes the web-detection service with the raw image
// bytes and interprets the match lists. A single failed call fails the
// request; there is no retry.
type WebSearchStrategy struct {
	detector visionclient.WebDetector
}

// NewWebSearchStrategy creates a web-search strategy on top of the given
// detector client.
func NewWebSearchStrategy(detector visionclient.WebDetector) *WebSearchStrategy {
	return &WebSearchStrategy{detector: detector}
}

// Name returns the strategy name.
func (s *WebSearchStrategy) Name() string {
	return string(models.AnalysisWebSearch)
}

// Analyze submits the decoded bytes for web detection. The image is
// classified as fraudulent only when at least one full (exact) match is
// reported; partial matches alone do not count.
func (s *WebSearchStrategy) Analyze(ctx context.Context, img *validation.DecodedImage) (models.AnalysisResult, error) {
	logger.Debug("Starting web detection")

	detection, err := s.detector.DetectWeb(ctx, &visionpb.Image{Content: img.Raw}, nil)
	if err != nil {
		return nil, apperrors.NewWebDetectionError(fmt.Sprintf("web detection failed: %v", err), err)
	}

	full := detection.GetFullMatchingImages()
	partial := detection.GetPartialMatchingImages()

	result := models.WebDetectionResult{
		IsFraud:               len(full) > 0,
		MatchingImagesCount:   len(full),
		FullMatchingImages:    make([]string, 0, len(full)),
		PartialMatchingImages: make([]string, 0, len(partial)),
	}
	for _, match := range full {
		result.FullMatchingImages = append(result.FullMatchingImages, match.GetUrl())
	}
	for _, match := range partial {
		result.PartialMatchingImages = append(result.PartialMatchingImages, match.GetUrl())
	}

	logger.WithFields(logrus.Fields{
		"is_fraud":        result.IsFraud,
		"full_matches":    len(full),
		"partial_matches": len(partial),
	}).Info("Web detection completed")

	return result, nil
}
