package errors

import (
	"fmt"
	"net/http"
)

// ErrorType categorizes application errors for logging and status mapping.
type ErrorType string

const (
	ErrorTypeInvalidPayload      ErrorType = "invalid_payload"
	ErrorTypePayloadTooLarge     ErrorType = "payload_too_large"
	ErrorTypeInvalidImageFormat  ErrorType = "invalid_image_format"
	ErrorTypeUnsupportedAnalysis ErrorType = "unsupported_analysis_type"
	ErrorTypeWebDetection        ErrorType = "web_detection_failed"
	ErrorTypeClassification      ErrorType = "classification_failed"
	ErrorTypeInternal            ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewInvalidPayloadError reports a payload that is not decodable base64.
func NewInvalidPayloadError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidPayload,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewPayloadTooLargeError reports a decoded payload above the size limit.
func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypePayloadTooLarge,
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewInvalidImageFormatError reports bytes that do not form a decodable image.
func NewInvalidImageFormatError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidImageFormat,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnsupportedAnalysisError reports a directive the dispatcher does not know.
func NewUnsupportedAnalysisError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedAnalysis,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewWebDetectionError wraps a failure from the web-detection service.
func NewWebDetectionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeWebDetection,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewClassificationError wraps a failure from the classification service.
func NewClassificationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeClassification,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
