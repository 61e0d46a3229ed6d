package domain

import (
	"errors"
	"math"
	"testing"
)

var nan = math.NaN()

func testScan(attrs map[string]string, bands map[string]Grid) *Scan {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Scan{Bands: bands, Attrs: attrs}
}

func TestIsDaytime(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	tests := []struct {
		name  string
		start string
		want  bool
	}{
		{"morning edge", "2026-03-21T06:00:00Z", true},
		{"midday", "2026-03-21T12:30:17.4Z", true},
		{"evening edge", "2026-03-21T18:59:59Z", true},
		{"before dawn", "2026-03-21T05:59:59Z", false},
		{"night", "2026-03-21T19:00:00Z", false},
		{"midnight", "2026-03-21T00:00:00Z", false},
		{"explicit offset", "2026-03-21T04:00:00+05:00", false}, // 23:00 UTC
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scan := testScan(map[string]string{AttrTimeCoverageStart: tt.start}, nil)
			if got := c.IsDaytime(scan); got != tt.want {
				t.Errorf("IsDaytime(%q) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestIsDaytimeMissingAttributeDefaultsToDay(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	if !c.IsDaytime(testScan(nil, nil)) {
		t.Error("IsDaytime without time_coverage_start should default to true")
	}
}

func TestIsDaytimeUnparsableAttributeDefaultsToDay(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(map[string]string{AttrTimeCoverageStart: "not-a-timestamp"}, nil)
	if !c.IsDaytime(scan) {
		t.Error("IsDaytime with unparsable timestamp should default to true")
	}
}

func TestClassifyIR(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(nil, map[string]Grid{
		"CMI_C13": {{270, 290}, {nan, 275}},
	})

	got, err := c.ClassifyIR(scan)
	if err != nil {
		t.Fatalf("ClassifyIR failed: %v", err)
	}

	// 2 cloudy of 3 valid pixels.
	want := 200.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ClassifyIR = %v, want %v", got, want)
	}
}

func TestClassifyIRAllNaN(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(nil, map[string]Grid{
		"CMI_C13": {{nan, nan}, {nan, nan}},
	})

	got, err := c.ClassifyIR(scan)
	if err != nil {
		t.Fatalf("ClassifyIR failed: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("ClassifyIR on all-NaN band = %v, want NaN", got)
	}
}

func TestClassifyIRMissingBand(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	_, err := c.ClassifyIR(testScan(nil, map[string]Grid{}))
	if !errors.Is(err, ErrBandMissing) {
		t.Errorf("ClassifyIR error = %v, want ErrBandMissing", err)
	}
}

func TestClassifyMultiband(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(nil, map[string]Grid{
		"CMI_C13": {{290, 270}},
		"CMI_C02": {{0.1, 0.5}},
	})

	got, err := c.ClassifyMultiband(scan)
	if err != nil {
		t.Fatalf("ClassifyMultiband failed: %v", err)
	}
	if got != 50 {
		t.Errorf("ClassifyMultiband = %v, want 50", got)
	}
}

func TestClassifyMultibandBrightVisiblePixel(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(nil, map[string]Grid{
		"CMI_C13": {{290, 290, 290, 290}},
		"CMI_C02": {{0.1, 0.1, 0.1, 0.1}},
		"CMI_C03": {{0.9, 0.1, 0.1, 0.1}},
	})

	got, err := c.ClassifyMultiband(scan)
	if err != nil {
		t.Fatalf("ClassifyMultiband failed: %v", err)
	}
	if got != 25 {
		t.Errorf("ClassifyMultiband = %v, want 25", got)
	}
}

func TestClassifyMultibandAbsentVisibleBandsMatchesIROnly(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	ir := Grid{{270, 290, 285}, {nan, 279.9, 300}}
	scan := testScan(nil, map[string]Grid{"CMI_C13": ir})

	multi, err := c.ClassifyMultiband(scan)
	if err != nil {
		t.Fatalf("ClassifyMultiband failed: %v", err)
	}
	irOnly, err := c.ClassifyIR(scan)
	if err != nil {
		t.Fatalf("ClassifyIR failed: %v", err)
	}
	if multi != irOnly {
		t.Errorf("ClassifyMultiband without visible bands = %v, want %v (IR-only)", multi, irOnly)
	}
}

func TestClassifyMultibandVisibleNaNNotExcluded(t *testing.T) {
	// The denominator counts only the IR band's valid pixels; a NaN in a
	// visible band does not shrink it.
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(nil, map[string]Grid{
		"CMI_C13": {{290, 290}},
		"CMI_C02": {{nan, 0.5}},
	})

	got, err := c.ClassifyMultiband(scan)
	if err != nil {
		t.Fatalf("ClassifyMultiband failed: %v", err)
	}
	if got != 50 {
		t.Errorf("ClassifyMultiband = %v, want 50", got)
	}
}

func TestClassifyDispatchesOnIllumination(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	bands := map[string]Grid{
		"CMI_C13": {{290, 270}},
		"CMI_C02": {{0.5, 0.1}}, // only counted on the daytime path
	}

	day, err := c.Classify(testScan(map[string]string{AttrTimeCoverageStart: "2026-03-21T12:00:00Z"}, bands))
	if err != nil {
		t.Fatalf("Classify (day) failed: %v", err)
	}
	if !day.Daytime {
		t.Error("Daytime = false, want true")
	}
	if day.Percent != 100 {
		t.Errorf("day Percent = %v, want 100", day.Percent)
	}

	night, err := c.Classify(testScan(map[string]string{AttrTimeCoverageStart: "2026-03-21T03:00:00Z"}, bands))
	if err != nil {
		t.Fatalf("Classify (night) failed: %v", err)
	}
	if night.Daytime {
		t.Error("Daytime = true, want false")
	}
	if night.Percent != 50 {
		t.Errorf("night Percent = %v, want 50", night.Percent)
	}
}

func TestClassifierConfigDefaults(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	if c.irBand != DefaultIRBand {
		t.Errorf("irBand = %q, want %q", c.irBand, DefaultIRBand)
	}
	if c.irThreshold != DefaultIRThreshold {
		t.Errorf("irThreshold = %v, want %v", c.irThreshold, DefaultIRThreshold)
	}
	if c.visThreshold != DefaultVisThreshold {
		t.Errorf("visThreshold = %v, want %v", c.visThreshold, DefaultVisThreshold)
	}
	if len(c.visBands) != 2 {
		t.Errorf("len(visBands) = %d, want 2", len(c.visBands))
	}
}

func TestCloudMaskDayCombinesVisible(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})
	scan := testScan(map[string]string{AttrTimeCoverageStart: "2026-03-21T12:00:00Z"}, map[string]Grid{
		"CMI_C13": {{290, 270}},
		"CMI_C03": {{0.5, 0.1}},
	})

	mask, err := c.CloudMask(scan)
	if err != nil {
		t.Fatalf("CloudMask failed: %v", err)
	}
	want := CloudMask{{true, true}}
	for j := range want[0] {
		if mask[0][j] != want[0][j] {
			t.Errorf("mask[0][%d] = %v, want %v", j, mask[0][j], want[0][j])
		}
	}
}
