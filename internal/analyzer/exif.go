package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"go-image-fraud-analyzer/internal/logger"
	"go-image-fraud-analyzer/internal/validation"
	"go-image-fraud-analyzer/pkg/models"
)

const noExifWarning = "No EXIF data found in image"

// ExifStrategy extracts embedded camera/editing metadata and derives
// manipulation warnings from it. Unlike the other strategies it never
// returns an error: an image without a metadata block yields an empty
// result with a warning, and an internal parse failure degrades to an
// error-shaped result inside a successful response.
type ExifStrategy struct{}

// NewExifStrategy creates the metadata inspection strategy.
func NewExifStrategy() *ExifStrategy {
	return &ExifStrategy{}
}

// Name returns the strategy name.
func (s *ExifStrategy) Name() string {
	return string(models.AnalysisExif)
}

// Analyze inspects the raw image bytes for EXIF metadata.
func (s *ExifStrategy) Analyze(ctx context.Context, img *validation.DecodedImage) (models.AnalysisResult, error) {
	return s.inspect(img.Raw), nil
}

func (s *ExifStrategy) inspect(raw []byte) (result models.AnalysisResult) {
	// The exif library panics on some malformed inputs; degrade those to
	// the error-shaped result like any other parse failure.
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("EXIF analysis failed")
			result = models.ExifErrorResult{Error: fmt.Sprintf("EXIF analysis failed: %v", r)}
		}
	}()

	logger.Debug("Starting EXIF analysis")

	rawExif, err := exif.SearchAndExtractExif(raw)
	if errors.Is(err, exif.ErrNoExif) {
		logger.Info(noExifWarning)
		return models.ExifResult{Warnings: []string{noExifWarning}}
	}
	if err != nil {
		logger.WithError(err).Error("EXIF analysis failed")
		return models.ExifErrorResult{Error: fmt.Sprintf("EXIF analysis failed: %v", err)}
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		logger.WithError(err).Error("EXIF analysis failed")
		return models.ExifErrorResult{Error: fmt.Sprintf("EXIF analysis failed: %v", err)}
	}

	analysis := models.ExifResult{Warnings: []string{}}
	for _, tag := range tags {
		switch {
		case tag.IfdPath == "IFD" && tag.TagName == "Model":
			analysis.CameraModel = tagText(tag.Value)
		case tag.IfdPath == "IFD" && tag.TagName == "Software":
			analysis.Software = tagText(tag.Value)
		case tag.IfdPath == "IFD/Exif" && tag.TagName == "DateTimeOriginal":
			analysis.DateTimeOriginal = tagText(tag.Value)
		case tag.IfdPath == "IFD/Exif" && tag.TagName == "DateTimeDigitized":
			analysis.DateTimeDigitized = tagText(tag.Value)
		}
	}

	// A software tag means the image went through editing software after
	// capture; diverging timestamps hint at manipulation or re-encoding.
	if analysis.Software != "" {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf("Image edited with software: %s", analysis.Software))
	}
	if analysis.DateTimeOriginal != "" && analysis.DateTimeDigitized != "" &&
		analysis.DateTimeOriginal != analysis.DateTimeDigitized {
		analysis.Warnings = append(analysis.Warnings, "Original date and digitized date do not match.")
	}

	logger.Info("EXIF analysis completed successfully")
	return analysis
}

// tagText renders a tag value as text, dropping bytes that do not form
// valid UTF-8 and trailing NULs.
func tagText(v interface{}) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		s = fmt.Sprint(t)
	}
	return strings.TrimRight(strings.ToValidUTF8(s, ""), "\x00")
}
