package netcdf

import (
	"math"
	"testing"
)

func TestUnpackGridPackedInt16(t *testing.T) {
	// ABI CMI packing: physical = raw*scale + offset, fill -> NaN.
	p := packing{
		fill:     -1,
		hasFill:  true,
		scale:    0.04,
		hasScale: true,
		offset:   180,
	}

	grid, ok := unpackGrid([][]int16{{2500, -1}, {0, 100}}, p)
	if !ok {
		t.Fatal("unpackGrid rejected [][]int16")
	}

	if got := grid[0][0]; math.Abs(got-280) > 1e-9 {
		t.Errorf("grid[0][0] = %v, want 280", got)
	}
	if !math.IsNaN(grid[0][1]) {
		t.Errorf("fill pixel = %v, want NaN", grid[0][1])
	}
	if got := grid[1][0]; got != 180 {
		t.Errorf("grid[1][0] = %v, want 180", got)
	}
	if got := grid[1][1]; math.Abs(got-184) > 1e-9 {
		t.Errorf("grid[1][1] = %v, want 184", got)
	}
}

func TestUnpackGridFloat32Unpacked(t *testing.T) {
	grid, ok := unpackGrid([][]float32{{0.25, 0.5}}, packing{})
	if !ok {
		t.Fatal("unpackGrid rejected [][]float32")
	}
	if grid[0][0] != 0.25 || grid[0][1] != 0.5 {
		t.Errorf("grid = %v", grid)
	}
}

func TestUnpackGridRejectsNonNumeric(t *testing.T) {
	if _, ok := unpackGrid("scalar", packing{}); ok {
		t.Error("unpackGrid should reject non-grid values")
	}
	if _, ok := unpackGrid([]float64{1, 2}, packing{}); ok {
		t.Error("unpackGrid should reject 1-D values")
	}
}

func TestToFloatVariants(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float32 scalar", float32(0.04), 0.04, true},
		{"float64 scalar", 280.0, 280.0, true},
		{"int16 scalar", int16(-1), -1, true},
		{"single-element slice", []float32{180}, 180, true},
		{"multi-element slice", []float32{1, 2}, 0, false},
		{"string", "x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat(tt.in)
			if ok != tt.ok {
				t.Fatalf("toFloat(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("toFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToString(t *testing.T) {
	if s, ok := toString("2026-03-21T12:00:00.0Z"); !ok || s != "2026-03-21T12:00:00.0Z" {
		t.Errorf("toString = (%q, %v)", s, ok)
	}
	if s, ok := toString([]string{"one"}); !ok || s != "one" {
		t.Errorf("toString slice = (%q, %v)", s, ok)
	}
	if _, ok := toString(42); ok {
		t.Error("toString should reject non-strings")
	}
}
