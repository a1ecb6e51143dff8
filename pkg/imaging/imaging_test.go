package imaging

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

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	t.Run("accepts a PNG", func(t *testing.T) {
		mime, err := Validate("me.png", pngBytes(t, 4, 4))
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("rejects empty files", func(t *testing.T) {
		_, err := Validate("me.png", nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		_, err := Validate("me.pdf", []byte("%PDF-1.4"))
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("rejects spoofed content", func(t *testing.T) {
		_, err := Validate("me.png", jpegBytes(t, 4, 4))
		assert.ErrorIs(t, err, ErrContentMismatch)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		data := append([]byte{0xFF, 0xD8, 0xFF}, make([]byte, MaxUploadBytes)...)
		_, err := Validate("me.jpg", data)
		assert.ErrorIs(t, err, ErrTooLarge)
	})
}

func TestPrepare(t *testing.T) {
	t.Run("keeps small images untouched", func(t *testing.T) {
		data := pngBytes(t, 64, 32)
		img, err := Prepare("avatar.png", data)
		require.NoError(t, err)
		assert.Equal(t, data, img.Data)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, "avatar.png", img.Filename)
		assert.Equal(t, 64, img.Width)
	})

	t.Run("resizes large images to JPEG", func(t *testing.T) {
		img, err := Prepare("avatar.png", pngBytes(t, 1024, 512))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.ContentType)
		assert.Equal(t, "avatar.jpg", img.Filename)
		assert.Equal(t, TargetDimension, img.Width)
		assert.Equal(t, 256, img.Height)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, TargetDimension, cfg.Width)
	})
}
