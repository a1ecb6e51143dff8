// Package imaging validates and normalizes uploaded profile pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes bounds the raw upload size
	MaxUploadBytes = 5 * 1024 * 1024
	// MaxSourceDimension rejects images too large to decode safely
	MaxSourceDimension = 8000
	// TargetDimension is the longest side kept after resizing
	TargetDimension = 512
	// JPEGQuality is used when a resized image is re-encoded
	JPEGQuality = 85
)

var (
	ErrEmpty           = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds the 5 MB limit")
	ErrUnsupportedType = errors.New("only JPEG, PNG, GIF and WebP images are allowed")
	ErrContentMismatch = errors.New("file content does not match its extension")
	ErrDimensions      = errors.New("image dimensions are too large")
)

// Magic byte signatures keyed by lowercase extension
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, {0x47, 0x49, 0x46, 0x38, 0x39, 0x61}}, // GIF87a & GIF89a
	".webp": {{0x52, 0x49, 0x46, 0x46}},                                                   // RIFF header
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is a validated, possibly resized picture
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
	Width       int
	Height      int
}

// Validate checks size, extension, magic bytes and sniffed MIME type.
// It returns the detected MIME type.
func Validate(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	signatures, ok := magicBytes[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	if !hasSignature(data, signatures) {
		return "", ErrContentMismatch
	}

	detected := mimetype.Detect(data).String()
	if !allowedMIMETypes[detected] {
		return "", fmt.Errorf("%w: detected %s", ErrUnsupportedType, detected)
	}
	return detected, nil
}

func hasSignature(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// Prepare validates the upload and downsizes it to TargetDimension as JPEG
// when either side is larger. Smaller images are kept as uploaded.
func Prepare(filename string, data []byte) (*Image, error) {
	contentType, err := Validate(filename, data)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width > MaxSourceDimension || cfg.Height > MaxSourceDimension {
		return nil, ErrDimensions
	}

	if cfg.Width <= TargetDimension && cfg.Height <= TargetDimension {
		return &Image{
			Data:        data,
			ContentType: contentType,
			Filename:    filepath.Base(filename),
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	resized, w, h, err := Compress(data, TargetDimension, JPEGQuality)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return &Image{
		Data:        resized,
		ContentType: "image/jpeg",
		Filename:    base + ".jpg",
		Width:       w,
		Height:      h,
	}, nil
}

// Compress scales an image so its longest side is maxDimension, keeping the
// aspect ratio, and encodes it as JPEG
func Compress(data []byte, maxDimension int, quality int) ([]byte, int, int, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else if height > maxDimension {
		newHeight = maxDimension
		newWidth = int(float64(width) * float64(maxDimension) / float64(height))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), newWidth, newHeight, nil
}
