package models

// AnalysisType selects which analysis strategy runs for a request.
type AnalysisType string

const (
	AnalysisWebSearch      AnalysisType = "web_search"
	AnalysisClassification AnalysisType = "classification"
	AnalysisExif           AnalysisType = "exif"
)

// AnalysisResult is the union of the three strategy result shapes.
// Exactly one concrete type crosses the boundary per request.
type AnalysisResult interface {
	analysisResult()
}

// WebDetectionResult is the outcome of a reverse-image web-match probe.
// An image is flagged as fraudulent only when the detection service reports
// at least one full (exact) match elsewhere on the web; partial matches
// alone never trigger the flag.
type WebDetectionResult struct {
	IsFraud               bool     `json:"is_fraud"`
	MatchingImagesCount   int      `json:"matching_images_count"`
	FullMatchingImages    []string `json:"full_matching_images"`
	PartialMatchingImages []string `json:"partial_matching_images"`
}

// Prediction is one normalized classifier prediction record. The remote
// service returns opaque protobuf values; after normalization keys such as
// "confidences", "displayNames" and "ids" hold plain ordered slices.
type Prediction map[string]interface{}

// ClassificationResult is the normalized output of the deployed
// classification model.
type ClassificationResult struct {
	DeployedModelID  string       `json:"deployed_model_id"`
	ModelVersionID   string       `json:"model_version_id"`
	ModelDisplayName string       `json:"model_display_name"`
	Predictions      []Prediction `json:"predictions"`
}

// ExifResult carries the camera/editing metadata extracted from an image.
// All string fields are empty when the image has no metadata block; that
// case is reported through Warnings, not as an error.
type ExifResult struct {
	CameraModel       string   `json:"camera_model"`
	Software          string   `json:"software"`
	DateTimeOriginal  string   `json:"datetime_original"`
	DateTimeDigitized string   `json:"datetime_digitized"`
	Warnings          []string `json:"warnings"`
}

// ExifErrorResult is the degraded shape returned when metadata extraction
// itself fails. It travels inside a successful response so the exif path
// never turns an internal parse failure into a transport-level error.
type ExifErrorResult struct {
	Error string `json:"error"`
}

func (WebDetectionResult) analysisResult()   {}
func (ClassificationResult) analysisResult() {}
func (ExifResult) analysisResult()           {}
func (ExifErrorResult) analysisResult()      {}
