package utils

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	// register the accepted input codecs with image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadSize caps inbound food photos at 10 MiB.
	MaxUploadSize = 10 << 20

	maxImageDimension = 1024
	jpegQuality       = 85
)

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/gif": true, "image/webp": true,
}

// AllowedImageFile checks extension and declared content type against
// the accepted formats.
func AllowedImageFile(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	mime := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return allowedImageExts[ext] && allowedImageMimes[mime]
}

// OptimizeImage normalizes an uploaded photo: decode whatever format
// came in, scale it down so neither side exceeds 1024px (small images
// are left alone), and re-encode as JPEG at quality 85.
func OptimizeImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
