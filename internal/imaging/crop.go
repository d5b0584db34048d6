// Package imaging normalizes uploaded product photos: center-crop to 4:3
// and re-encode as JPEG at a fixed quality.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"
)

const (
	ratioW = 4
	ratioH = 3
)

// CropRect returns the largest centered 4:3 rectangle inside an image of
// the given size.
func CropRect(width, height int) image.Rectangle {
	cropW := width
	cropH := width * ratioH / ratioW
	if cropH > height {
		cropH = height
		cropW = height * ratioW / ratioH
	}
	x0 := (width - cropW) / 2
	y0 := (height - cropH) / 2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

// Normalize decodes an uploaded image (jpeg, png or gif), center-crops it
// to 4:3 and re-encodes it as JPEG at the given quality.
func Normalize(data []byte, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	rect := CropRect(bounds.Dx(), bounds.Dy()).Add(bounds.Min)

	cropped := src
	if rect != bounds {
		type subImager interface {
			SubImage(r image.Rectangle) image.Image
		}
		if si, ok := src.(subImager); ok {
			cropped = si.SubImage(rect)
		} else {
			// Decoded formats without SubImage get copied pixel by pixel.
			dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
			for y := 0; y < rect.Dy(); y++ {
				for x := 0; x < rect.Dx(); x++ {
					dst.Set(x, y, src.At(rect.Min.X+x, rect.Min.Y+y))
				}
			}
			cropped = dst
		}
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, cropped, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
