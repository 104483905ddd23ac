package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	return png.Encode(buf, img)
}

func TestOptimizeImageDownscalesLargeImages(t *testing.T) {
	data := testImage(t, 2048, 512, encodeJPEG)

	out, err := OptimizeImage(data)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func TestOptimizeImageDoesNotUpscale(t *testing.T) {
	data := testImage(t, 100, 60, encodePNG)

	out, err := OptimizeImage(data)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format, "png input is normalized to jpeg")
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 60, decoded.Bounds().Dy())
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestAllowedImageFile(t *testing.T) {
	assert.True(t, AllowedImageFile("dinner.jpg", "image/jpeg"))
	assert.True(t, AllowedImageFile("dinner.JPEG", "image/jpeg"))
	assert.True(t, AllowedImageFile("salad.png", "image/png"))
	assert.True(t, AllowedImageFile("snack.webp", "image/webp"))
	assert.True(t, AllowedImageFile("cake.gif", "image/gif; charset=binary"))

	assert.False(t, AllowedImageFile("report.pdf", "application/pdf"))
	assert.False(t, AllowedImageFile("dinner.jpg", "application/octet-stream"))
	assert.False(t, AllowedImageFile("dinner", "image/jpeg"))
	assert.False(t, AllowedImageFile("movie.mp4", "video/mp4"))
}
