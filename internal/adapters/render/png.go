// Package render draws spectral bands and cloud masks as PNG images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/jobrunner/nimbus/internal/domain"
)

// PNGRenderer exposes the package's drawing functions as a value satisfying
// the application's renderer port.
type PNGRenderer struct{}

// BandPNG implements the renderer port.
func (PNGRenderer) BandPNG(g domain.Grid) ([]byte, error) { return BandPNG(g) }

// MaskPNG implements the renderer port.
func (PNGRenderer) MaskPNG(m domain.CloudMask) ([]byte, error) { return MaskPNG(m) }

// BandPNG renders a band as a grayscale PNG, stretched linearly between the
// band's own minimum and maximum. NaN pixels render black.
func BandPNG(g domain.Grid) ([]byte, error) {
	h, w := shape(g)
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("empty band: %w", domain.ErrInvalidInput)
	}

	lo, hi, any := valueRange(g)
	if !any {
		// All NaN: render an all-black frame rather than failing.
		lo, hi = 0, 1
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range g {
		for x, v := range row {
			if math.IsNaN(v) {
				continue
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * (v - lo) / span)})
		}
	}

	return encode(img)
}

// MaskPNG renders a cloud mask: cloudy pixels white, clear pixels dark blue.
func MaskPNG(m domain.CloudMask) ([]byte, error) {
	h := len(m)
	w := 0
	if h > 0 {
		w = len(m[0])
	}
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("empty mask: %w", domain.ErrInvalidInput)
	}

	clear := color.RGBA{R: 18, G: 48, B: 94, A: 255}
	cloudy := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range m {
		for x, v := range row {
			if v {
				img.SetRGBA(x, y, cloudy)
			} else {
				img.SetRGBA(x, y, clear)
			}
		}
	}

	return encode(img)
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shape(g domain.Grid) (h, w int) {
	h = len(g)
	if h > 0 {
		w = len(g[0])
	}
	return h, w
}

func valueRange(g domain.Grid) (lo, hi float64, any bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range g {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			any = true
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi, any
}
