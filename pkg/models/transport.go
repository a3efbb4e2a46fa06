package models

// AnalyzeRequest is the body accepted by the analyze endpoint. The boundary
// schema constrains analysis_type to the three known directives; the core
// dispatcher re-validates defensively.
type AnalyzeRequest struct {
	SourceType   string `json:"source_type" binding:"required,oneof=base64"`
	Source       string `json:"source" binding:"required"`
	AnalysisType string `json:"analysis_type" binding:"required,oneof=web_search exif classification"`
}

// ErrorResponse is the error body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
