// Package media provides image processing utilities
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// DecodeError reports an upload that could not be decoded as a raster image.
// Callers map it to a retryable failure instead of hanging on a bad file.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var dataURIPattern = regexp.MustCompile(`^data:image/[\w.+-]+;base64,`)

// ImageProcessor normalizes uploaded photos for inline document storage.
type ImageProcessor struct {
	targetWidth int
	jpegQuality int
}

// NewImageProcessor creates a new ImageProcessor instance.
func NewImageProcessor(targetWidth, jpegQuality int) *ImageProcessor {
	return &ImageProcessor{
		targetWidth: targetWidth,
		jpegQuality: jpegQuality,
	}
}

// NormalizePhoto re-encodes an uploaded raster image for inline storage:
// scale to the target width preserving aspect ratio (height = H*target/W,
// upsampling below the target width is accepted), single full-area draw,
// JPEG re-encode at the configured quality, returned as a data URI.
func (p *ImageProcessor) NormalizePhoto(dataURI string) (string, error) {
	if dataURI == "" {
		return "", &DecodeError{Err: fmt.Errorf("empty base64 data")}
	}
	if !dataURIPattern.MatchString(dataURI) {
		return "", &DecodeError{Err: fmt.Errorf("invalid image base64 format")}
	}

	format := extractFormat(dataURI)

	b64Data := dataURIPattern.ReplaceAllString(dataURI, "")
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return "", &DecodeError{Format: format, Err: fmt.Errorf("failed to decode base64: %w", err)}
	}

	img, err := p.decode(decoded, format)
	if err != nil {
		return "", &DecodeError{Format: format, Err: err}
	}

	// Resize(w, 0) preserves aspect ratio: height comes out as H*target/W.
	resized := imaging.Resize(img, p.targetWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(p.jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// decode routes to the right decoder: imaging covers JPEG/PNG/GIF/BMP/TIFF,
// webp needs its own library.
func (p *ImageProcessor) decode(data []byte, format string) (image.Image, error) {
	if format == "webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data))
}

// extractFormat auto-detects the image format from the data URI MIME type.
func extractFormat(data string) string {
	switch {
	case strings.Contains(data, "data:image/png"):
		return "png"
	case strings.Contains(data, "data:image/jpeg"), strings.Contains(data, "data:image/jpg"):
		return "jpg"
	case strings.Contains(data, "data:image/webp"):
		return "webp"
	case strings.Contains(data, "data:image/gif"):
		return "gif"
	}
	return ""
}
