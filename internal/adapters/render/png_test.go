package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/jobrunner/nimbus/internal/domain"
)

func TestBandPNG(t *testing.T) {
	nan := math.NaN()
	g := domain.Grid{
		{270, 280, nan},
		{290, 300, 280},
	}

	data, err := BandPNG(g)
	if err != nil {
		t.Fatalf("BandPNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("image size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}

func TestBandPNGAllNaN(t *testing.T) {
	nan := math.NaN()
	data, err := BandPNG(domain.Grid{{nan, nan}})
	if err != nil {
		t.Fatalf("BandPNG on all-NaN band failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
}

func TestBandPNGEmpty(t *testing.T) {
	if _, err := BandPNG(domain.Grid{}); err == nil {
		t.Error("BandPNG should reject an empty grid")
	}
}

func TestMaskPNG(t *testing.T) {
	data, err := MaskPNG(domain.CloudMask{{true, false}, {false, true}})
	if err != nil {
		t.Fatalf("MaskPNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("cloudy pixel = (%d,%d,%d), want white", r, g, b)
	}
	r, _, _, _ = img.At(1, 0).RGBA()
	if r == 0xffff {
		t.Error("clear pixel should not be white")
	}
}

func TestMaskPNGEmpty(t *testing.T) {
	if _, err := MaskPNG(domain.CloudMask{}); err == nil {
		t.Error("MaskPNG should reject an empty mask")
	}
}
