package domain

import (
	"fmt"
	"math"
	"time"
)

// Default classification parameters for GOES ABI Cloud & Moisture Imagery.
const (
	DefaultIRBand       = "CMI_C13" // clean longwave IR window
	DefaultIRThreshold  = 280.0     // Kelvin; colder tops count as cloud
	DefaultVisThreshold = 0.3       // reflectance; brighter pixels count as cloud
)

// DefaultVisBands are the visible channels consulted on the daytime path.
func DefaultVisBands() []string {
	return []string{"CMI_C02", "CMI_C03"}
}

// Daytime window in UTC hours, inclusive on both ends. This is a coarse
// global rule that ignores the scan's actual sub-solar point; it is kept
// deliberately simple rather than computing a solar zenith angle.
const (
	dayStartHour = 6
	dayEndHour   = 18
)

// AttrTimeCoverageStart is the scan-start metadata attribute consulted by
// the day/night decision.
const AttrTimeCoverageStart = "time_coverage_start"

// Classifier converts a scan's spectral bands into a cloud fraction. The
// zero value is not usable; construct with NewClassifier.
type Classifier struct {
	irBand       string
	visBands     []string
	irThreshold  float64
	visThreshold float64
}

// ClassifierConfig holds classifier parameters. Zero values fall back to the
// GOES ABI defaults above.
type ClassifierConfig struct {
	IRBand       string
	VisBands     []string
	IRThreshold  float64
	VisThreshold float64
}

// NewClassifier creates a classifier, applying defaults for unset fields.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	if cfg.IRBand == "" {
		cfg.IRBand = DefaultIRBand
	}
	if len(cfg.VisBands) == 0 {
		cfg.VisBands = DefaultVisBands()
	}
	if cfg.IRThreshold == 0 {
		cfg.IRThreshold = DefaultIRThreshold
	}
	if cfg.VisThreshold == 0 {
		cfg.VisThreshold = DefaultVisThreshold
	}
	return &Classifier{
		irBand:       cfg.IRBand,
		visBands:     cfg.VisBands,
		irThreshold:  cfg.IRThreshold,
		visThreshold: cfg.VisThreshold,
	}
}

// IsDaytime decides the illumination branch from the scan-start timestamp.
// A missing or unparsable timestamp defaults to daytime, biasing toward the
// multiband path; that is a policy choice, not an oversight.
func (c *Classifier) IsDaytime(scan *Scan) bool {
	raw, ok := scan.Attr(AttrTimeCoverageStart)
	if !ok {
		return true
	}
	start, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return true
	}
	hour := start.UTC().Hour()
	return hour >= dayStartHour && hour <= dayEndHour
}

// Classify derives the cloud fraction for a scan, dispatching to the
// multiband path during daytime and the IR-only path at night.
func (c *Classifier) Classify(scan *Scan) (CloudFractionResult, error) {
	daytime := c.IsDaytime(scan)

	var percent float64
	var err error
	if daytime {
		percent, err = c.ClassifyMultiband(scan)
	} else {
		percent, err = c.ClassifyIR(scan)
	}
	if err != nil {
		return CloudFractionResult{}, err
	}

	return CloudFractionResult{Percent: percent, Daytime: daytime}, nil
}

// ClassifyIR computes the cloud fraction from the IR band alone: a pixel is
// cloudy iff its brightness temperature is strictly below the threshold.
// NaN pixels are excluded from the denominator; a scan with no valid pixels
// yields NaN, which propagates rather than being clamped to zero.
func (c *Classifier) ClassifyIR(scan *Scan) (float64, error) {
	ir, ok := scan.Band(c.irBand)
	if !ok {
		return 0, fmt.Errorf("%s: %w", c.irBand, ErrBandMissing)
	}

	mask := thresholdBelow(ir, c.irThreshold)
	return fraction(mask.Count(), validCount(ir)), nil
}

// ClassifyMultiband computes the daytime cloud fraction: a pixel is cloudy
// iff it is IR-cold or any present visible band exceeds the reflectance
// threshold. Configured visible bands absent from the scan are skipped
// silently; with none present the mask degenerates to IR-only.
//
// The valid-pixel denominator uses only the IR band's non-NaN mask; visible
// band NaNs are not excluded. This asymmetry is preserved from the original
// algorithm definition.
func (c *Classifier) ClassifyMultiband(scan *Scan) (float64, error) {
	mask, err := c.CloudMaskMultiband(scan)
	if err != nil {
		return 0, err
	}

	ir, _ := scan.Band(c.irBand)
	return fraction(mask.Count(), validCount(ir)), nil
}

// CloudMaskIR returns the IR-only cloud mask.
func (c *Classifier) CloudMaskIR(scan *Scan) (CloudMask, error) {
	ir, ok := scan.Band(c.irBand)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.irBand, ErrBandMissing)
	}
	return thresholdBelow(ir, c.irThreshold), nil
}

// CloudMaskMultiband returns the combined IR-or-visible cloud mask.
func (c *Classifier) CloudMaskMultiband(scan *Scan) (CloudMask, error) {
	ir, ok := scan.Band(c.irBand)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c.irBand, ErrBandMissing)
	}

	mask := thresholdBelow(ir, c.irThreshold)
	for _, name := range c.visBands {
		vis, ok := scan.Band(name)
		if !ok {
			continue
		}
		orInto(mask, thresholdAbove(vis, c.visThreshold))
	}
	return mask, nil
}

// CloudMask returns the mask for the branch Classify would take.
func (c *Classifier) CloudMask(scan *Scan) (CloudMask, error) {
	if c.IsDaytime(scan) {
		return c.CloudMaskMultiband(scan)
	}
	return c.CloudMaskIR(scan)
}

// IRBand returns the configured IR band name.
func (c *Classifier) IRBand() string {
	return c.irBand
}

// thresholdBelow marks cells strictly below the threshold. NaN compares
// false, so invalid pixels never enter the mask.
func thresholdBelow(g Grid, threshold float64) CloudMask {
	mask := make(CloudMask, len(g))
	for i, row := range g {
		mask[i] = make([]bool, len(row))
		for j, v := range row {
			mask[i][j] = v < threshold
		}
	}
	return mask
}

// thresholdAbove marks cells strictly above the threshold.
func thresholdAbove(g Grid, threshold float64) CloudMask {
	mask := make(CloudMask, len(g))
	for i, row := range g {
		mask[i] = make([]bool, len(row))
		for j, v := range row {
			mask[i][j] = v > threshold
		}
	}
	return mask
}

// orInto merges src into dst cell-wise. Shapes are expected to match; a
// smaller src leaves the excess dst cells untouched.
func orInto(dst, src CloudMask) {
	for i := range dst {
		if i >= len(src) {
			return
		}
		for j := range dst[i] {
			if j < len(src[i]) && src[i][j] {
				dst[i][j] = true
			}
		}
	}
}

// validCount counts non-NaN cells.
func validCount(g Grid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if !math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// fraction converts counts to a percentage, NaN when nothing was valid.
func fraction(cloudy, valid int) float64 {
	if valid == 0 {
		return math.NaN()
	}
	return 100 * float64(cloudy) / float64(valid)
}
