package analyzer

import (
	"context"
	"fmt"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "go-image-fraud-analyzer/internal/errors"
	"go-image-fraud-analyzer/internal/logger"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/internal/visionclient"
	"go-image-fraud-analyzer/pkg/models"
)

// Inference parameters are fixed per operation, not caller-supplied.
const (
	confidenceThreshold = 0.1
	maxPredictions      = 10
)

// ClassificationStrategy submits the original base64 payload to a deployed
// classification model and normalizes its prediction records.
type ClassificationStrategy struct {
	predictor visionclient.Predictor
	endpoint  string
}

// NewClassificationStrategy creates a classification strategy targeting the
// given fully qualified model endpoint
// (projects/{project}/locations/{location}/endpoints/{endpoint}).
func NewClassificationStrategy(predictor visionclient.Predictor, endpoint string) *ClassificationStrategy {
	return &ClassificationStrategy{predictor: predictor, endpoint: endpoint}
}

// Name returns the strategy name.
func (s *ClassificationStrategy) Name() string {
	return string(models.AnalysisClassification)
}

// Analyze classifies the image. The request instance is built from the
// original encoded text, not the re-decoded bytes: the model endpoint
// expects base64 content verbatim.
func (s *ClassificationStrategy) Analyze(ctx context.Context, img *validation.DecodedImage) (models.AnalysisResult, error) {
	logger.Debug("Starting image classification")

	instance, err := structpb.NewStruct(map[string]interface{}{
		"content": img.Encoded,
	})
	if err != nil {
		return nil, apperrors.NewClassificationError(fmt.Sprintf("classification failed: %v", err), err)
	}
	parameters, err := structpb.NewStruct(map[string]interface{}{
		"confidenceThreshold": confidenceThreshold,
		"maxPredictions":      maxPredictions,
	})
	if err != nil {
		return nil, apperrors.NewClassificationError(fmt.Sprintf("classification failed: %v", err), err)
	}

	resp, err := s.predictor.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:   s.endpoint,
		Instances:  []*structpb.Value{structpb.NewStructValue(instance)},
		Parameters: structpb.NewStructValue(parameters),
	})
	if err != nil {
		return nil, apperrors.NewClassificationError(fmt.Sprintf("classification failed: %v", err), err)
	}

	// Prediction records arrive as opaque protobuf values; AsInterface
	// turns them into ordinary maps and ordered slices.
	predictions := make([]models.Prediction, 0, len(resp.GetPredictions()))
	for _, p := range resp.GetPredictions() {
		record, ok := p.AsInterface().(map[string]interface{})
		if !ok {
			record = map[string]interface{}{"value": p.AsInterface()}
		}
		predictions = append(predictions, models.Prediction(record))
	}

	result := models.ClassificationResult{
		DeployedModelID:  resp.GetDeployedModelId(),
		ModelVersionID:   resp.GetModelVersionId(),
		ModelDisplayName: resp.GetModelDisplayName(),
		Predictions:      predictions,
	}

	logger.WithFields(logrus.Fields{
		"deployed_model_id": result.DeployedModelID,
		"predictions":       len(predictions),
	}).Info("Classification completed successfully")

	return result, nil
}
