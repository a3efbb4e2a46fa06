// Package visionclient constructs the two remote-service clients used by
// the analysis strategies. Both are built eagerly at startup and reused for
// the lifetime of the process; the clients are safe for concurrent use once
// constructed.
package visionclient

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"go-image-fraud-analyzer/internal/logger"
)

// WebDetector is the slice of the vision service the web-match probe
// depends on. The generated annotator client only exposes batch RPCs, so
// NewWebDetector adapts it to this single-image surface.
type WebDetector interface {
	DetectWeb(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.WebDetection, error)
}

// Predictor is the slice of the prediction client the classifier adapter
// depends on.
type Predictor interface {
	Predict(ctx context.Context, req *aiplatformpb.PredictRequest, opts ...gax.CallOption) (*aiplatformpb.PredictResponse, error)
}

var _ Predictor = (*aiplatform.PredictionClient)(nil)

// batchAnnotator is the part of *vision.ImageAnnotatorClient the web
// detector adapter is built on.
type batchAnnotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
}

var _ batchAnnotator = (*vision.ImageAnnotatorClient)(nil)

type webDetectorAdapter struct {
	annotator batchAnnotator
}

var _ WebDetector = (*webDetectorAdapter)(nil)

// NewWebDetector wraps an annotator client in the single-image web
// detection surface the web-search strategy consumes.
func NewWebDetector(annotator batchAnnotator) WebDetector {
	return &webDetectorAdapter{annotator: annotator}
}

// DetectWeb runs a one-request web-detection batch and unwraps the single
// response, surfacing its per-response error if the service set one.
func (a *webDetectorAdapter) DetectWeb(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.WebDetection, error) {
	batch, err := a.annotator.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:        img,
			ImageContext: ictx,
			Features:     []*visionpb.Feature{{Type: visionpb.Feature_WEB_DETECTION}},
		}},
	}, opts...)
	if err != nil {
		return nil, err
	}

	responses := batch.GetResponses()
	if len(responses) != 1 {
		return nil, fmt.Errorf("expected one annotation response, got %d", len(responses))
	}
	if s := responses[0].GetError(); s != nil {
		return nil, status.ErrorProto(s)
	}
	return responses[0].GetWebDetection(), nil
}

// NewWebDetectionClient dials the image annotation service.
func NewWebDetectionClient(ctx context.Context) (*vision.ImageAnnotatorClient, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize web detection client")
		return nil, err
	}
	logger.Info("Web detection client initialized successfully")
	return client, nil
}

// NewPredictionClient dials the prediction service on the given regional
// API endpoint (for example "us-central1-aiplatform.googleapis.com:443").
func NewPredictionClient(ctx context.Context, apiEndpoint string) (*aiplatform.PredictionClient, error) {
	client, err := aiplatform.NewPredictionClient(ctx, option.WithEndpoint(apiEndpoint))
	if err != nil {
		logger.WithError(err).WithField("api_endpoint", apiEndpoint).Error("Failed to initialize prediction client")
		return nil, err
	}
	logger.WithField("api_endpoint", apiEndpoint).Info("Prediction client initialized successfully")
	return client, nil
}
