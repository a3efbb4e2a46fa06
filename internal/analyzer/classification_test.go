package analyzer

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/protobuf/types/known/structpb"

	apperrors "go-image-fraud-analyzer/internal/errors"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/pkg/models"
)

type fakePredictor struct {
	response *aiplatformpb.PredictResponse
	err      error

	calls       int
	lastRequest *aiplatformpb.PredictRequest
}

func (f *fakePredictor) Predict(ctx context.Context, req *aiplatformpb.PredictRequest, opts ...gax.CallOption) (*aiplatformpb.PredictResponse, error) {
	f.calls++
	f.lastRequest = req
	return f.response, f.err
}

const testEndpoint = "projects/ck-vertex/locations/us-central1/endpoints/6057421763162144768"

func TestClassificationStrategy_RequestShape(t *testing.T) {
	predictor := &fakePredictor{response: &aiplatformpb.PredictResponse{}}
	strategy := NewClassificationStrategy(predictor, testEndpoint)

	encoded := "aGVsbG8gd29ybGQ="
	_, err := strategy.Analyze(context.Background(), &validation.DecodedImage{
		Encoded: encoded,
		Raw:     []byte("decoded bytes that must NOT be sent"),
	})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	req := predictor.lastRequest
	if req.GetEndpoint() != testEndpoint {
		t.Errorf("Expected endpoint %q, got %q", testEndpoint, req.GetEndpoint())
	}

	if len(req.GetInstances()) != 1 {
		t.Fatalf("Expected exactly one instance, got %d", len(req.GetInstances()))
	}
	content := req.GetInstances()[0].GetStructValue().GetFields()["content"].GetStringValue()
	if content != encoded {
		t.Errorf("Expected instance to carry the original encoded text, got %q", content)
	}

	params := req.GetParameters().GetStructValue().GetFields()
	if got := params["confidenceThreshold"].GetNumberValue(); got != 0.1 {
		t.Errorf("Expected confidenceThreshold=0.1, got %v", got)
	}
	if got := params["maxPredictions"].GetNumberValue(); got != 10 {
		t.Errorf("Expected maxPredictions=10, got %v", got)
	}
}

func TestClassificationStrategy_NormalizesPredictions(t *testing.T) {
	prediction, err := structpb.NewValue(map[string]interface{}{
		"confidences":  []interface{}{0.97, 0.02},
		"displayNames": []interface{}{"fraud", "clean"},
		"ids":          []interface{}{"111", "222"},
		"extra":        "kept as-is",
	})
	if err != nil {
		t.Fatalf("Failed to build prediction value: %v", err)
	}

	predictor := &fakePredictor{response: &aiplatformpb.PredictResponse{
		DeployedModelId:  "dm-42",
		ModelVersionId:   "3",
		ModelDisplayName: "fraud-classifier",
		Predictions:      []*structpb.Value{prediction},
	}}
	strategy := NewClassificationStrategy(predictor, testEndpoint)

	result, err := strategy.Analyze(context.Background(), &validation.DecodedImage{Encoded: "Zm9v"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	got, ok := result.(models.ClassificationResult)
	if !ok {
		t.Fatalf("Expected ClassificationResult, got %T", result)
	}
	if got.DeployedModelID != "dm-42" || got.ModelVersionID != "3" || got.ModelDisplayName != "fraud-classifier" {
		t.Errorf("Unexpected model identifiers: %+v", got)
	}
	if len(got.Predictions) != 1 {
		t.Fatalf("Expected one prediction record, got %d", len(got.Predictions))
	}

	record := got.Predictions[0]
	confidences, ok := record["confidences"].([]interface{})
	if !ok || len(confidences) != 2 || confidences[0] != 0.97 {
		t.Errorf("Expected confidences as a plain ordered slice, got %#v", record["confidences"])
	}
	displayNames, ok := record["displayNames"].([]interface{})
	if !ok || len(displayNames) != 2 || displayNames[0] != "fraud" {
		t.Errorf("Expected displayNames as a plain ordered slice, got %#v", record["displayNames"])
	}
	ids, ok := record["ids"].([]interface{})
	if !ok || len(ids) != 2 || ids[1] != "222" {
		t.Errorf("Expected ids as a plain ordered slice, got %#v", record["ids"])
	}
	if record["extra"] != "kept as-is" {
		t.Errorf("Expected unknown prediction keys to pass through, got %#v", record["extra"])
	}
}

func TestClassificationStrategy_RemoteFailure(t *testing.T) {
	predictor := &fakePredictor{err: errors.New("deadline exceeded")}
	strategy := NewClassificationStrategy(predictor, testEndpoint)

	_, err := strategy.Analyze(context.Background(), &validation.DecodedImage{Encoded: "Zm9v"})
	if err == nil {
		t.Fatal("Expected error, got none")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeClassification) {
		t.Errorf("Expected classification_failed, got: %v", err)
	}
	if predictor.calls != 1 {
		t.Errorf("Expected a single attempt with no retry, got %d calls", predictor.calls)
	}
}
