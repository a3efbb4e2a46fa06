// Package validation is the shared gate in front of every analysis
// strategy: it decodes the incoming base64 payload, enforces the size
// limit and checks that the bytes form a well-formed image.
package validation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Register the image formats the validator accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sirupsen/logrus"

	apperrors "go-image-fraud-analyzer/internal/errors"
	"go-image-fraud-analyzer/internal/logger"
)

// DecodedImage is the per-request product of validation. It exists for the
// duration of one analysis call and is never shared or cached: the web
// probe consumes Raw, the metadata inspector consumes Raw/Bitmap, and the
// classification path reuses Encoded verbatim.
type DecodedImage struct {
	// Encoded is the original base64 text as received.
	Encoded string
	// Raw holds the decoded image bytes.
	Raw []byte
	// Bitmap is the decoded pixel data.
	Bitmap image.Image
	// Format is the detected container format ("jpeg", "png", ...).
	Format string
}

// ImageValidator validates and decodes base64 image payloads.
type ImageValidator interface {
	Validate(encoded string) (*DecodedImage, error)
}

type imageValidator struct {
	maxImageSize int
}

// NewImageValidator creates a validator enforcing the given maximum decoded
// size in bytes.
func NewImageValidator(maxImageSize int) ImageValidator {
	return &imageValidator{maxImageSize: maxImageSize}
}

func (v *imageValidator) Validate(encoded string) (*DecodedImage, error) {
	logger.Debug("Starting image validation")

	cleaned := strings.TrimSpace(strings.NewReplacer("\n", "", "\r", "").Replace(encoded))
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, apperrors.NewInvalidPayloadError(fmt.Sprintf("invalid image data: %v", err), err)
	}

	// Size gate runs before any image parsing so oversized input never
	// costs a decode.
	size := len(data)
	logger.WithField("size_bytes", size).Debug("Image payload decoded")
	if size > v.maxImageSize {
		return nil, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("image size (%d bytes) exceeds maximum allowed size of %d bytes", size, v.maxImageSize))
	}

	// Verify-then-reopen: check the container header without decoding
	// pixel data, then decode from a fresh reader since verification
	// consumes the stream.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, apperrors.NewInvalidImageFormatError(fmt.Sprintf("invalid image format: %v", err), err)
	}
	bitmap, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewInvalidImageFormatError(fmt.Sprintf("invalid image format: %v", err), err)
	}

	logger.WithFields(logrus.Fields{
		"format":     format,
		"size_bytes": size,
	}).Info("Image validated successfully")

	return &DecodedImage{
		Encoded: encoded,
		Raw:     data,
		Bitmap:  bitmap,
		Format:  format,
	}, nil
}
