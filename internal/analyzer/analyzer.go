// Package analyzer contains the analysis dispatcher and the three
// strategies it routes to: reverse-image web search, remote classification
// and EXIF metadata inspection. Every request passes the validation gate
// exactly once and then runs exactly one strategy.
package analyzer

import (
	"context"
	"fmt"

	apperrors "go-image-fraud-analyzer/internal/errors"
	"go-image-fraud-analyzer/internal/logger"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/pkg/models"
)

// Strategy is one analysis variant. Implementations interpret the decoded
// image and return their own result shape.
type Strategy interface {
	Name() string
	Analyze(ctx context.Context, img *validation.DecodedImage) (models.AnalysisResult, error)
}

// ImageAnalyzer validates an encoded payload and dispatches it to the
// strategy selected by the analysis type.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, encoded string, analysisType models.AnalysisType) (models.AnalysisResult, error)
}

type imageAnalyzer struct {
	validator      validation.ImageValidator
	webSearch      Strategy
	classification Strategy
	exif           Strategy
}

// NewImageAnalyzer wires the validator and the three strategies into a
// dispatcher. The instance is safe for concurrent use.
func NewImageAnalyzer(validator validation.ImageValidator, webSearch, classification, exif Strategy) ImageAnalyzer {
	return &imageAnalyzer{
		validator:      validator,
		webSearch:      webSearch,
		classification: classification,
		exif:           exif,
	}
}

func (a *imageAnalyzer) Analyze(ctx context.Context, encoded string, analysisType models.AnalysisType) (models.AnalysisResult, error) {
	logger.WithField("analysis_type", analysisType).Info("Starting analysis")

	// Validation is terminal: no strategy runs on a payload that fails it.
	img, err := a.validator.Validate(encoded)
	if err != nil {
		logger.WithError(err).Error("Image validation failed")
		return nil, err
	}

	// The boundary schema already rejects unknown types; the dispatcher
	// re-checks so it never depends on the transport layer for safety.
	var strat Strategy
	switch analysisType {
	case models.AnalysisWebSearch:
		strat = a.webSearch
	case models.AnalysisClassification:
		strat = a.classification
	case models.AnalysisExif:
		strat = a.exif
	default:
		unsupported := apperrors.NewUnsupportedAnalysisError(fmt.Sprintf("invalid analysis type: %s", analysisType))
		logger.WithError(unsupported).Error("Analysis failed")
		return nil, unsupported
	}

	result, err := strat.Analyze(ctx, img)
	if err != nil {
		logger.WithError(err).WithField("analysis_type", analysisType).Error("Analysis failed")
		return nil, err
	}

	logger.WithField("analysis_type", analysisType).Info("Analysis completed successfully")
	return result, nil
}
