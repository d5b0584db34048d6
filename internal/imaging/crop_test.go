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

func TestCropRect(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect image.Rectangle
	}{
		{"Already 4:3", 800, 600, image.Rect(0, 0, 800, 600)},
		{"Too tall, crop vertically centered", 400, 600, image.Rect(0, 150, 400, 450)},
		{"Too wide, crop horizontally centered", 1600, 600, image.Rect(400, 0, 1200, 600)},
		{"Square", 600, 600, image.Rect(0, 75, 600, 525)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CropRect(tt.w, tt.h)
			assert.Equal(t, tt.expect, got)
			// Result must be exactly 4:3.
			assert.Equal(t, got.Dx()*3, got.Dy()*4)
		})
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	t.Run("PNG re-encoded as 4:3 JPEG", func(t *testing.T) {
		out, err := Normalize(encodePNG(t, 400, 600), 85)
		require.NoError(t, err)

		decoded, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		b := decoded.Bounds()
		assert.Equal(t, 400, b.Dx())
		assert.Equal(t, 300, b.Dy())
	})

	t.Run("Already 4:3 keeps dimensions", func(t *testing.T) {
		out, err := Normalize(encodePNG(t, 800, 600), 85)
		require.NoError(t, err)

		decoded, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 800, decoded.Bounds().Dx())
		assert.Equal(t, 600, decoded.Bounds().Dy())
	})

	t.Run("Garbage input rejected", func(t *testing.T) {
		_, err := Normalize([]byte("not an image"), 85)
		assert.Error(t, err)
	})
}
