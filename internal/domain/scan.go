// Package domain contains the core types and cloud classification logic.
package domain

import (
	"os"
	"strings"
)

// Grid is a 2-D array of physical measurements for one spectral channel:
// brightness temperature in Kelvin for IR bands, reflectance fraction in
// [0,1] for visible bands. Invalid pixels (sensor gaps, off-earth) are NaN.
type Grid [][]float64

// CloudMask is a 2-D boolean grid, true where a pixel is classified cloudy.
// It has the same shape as the band(s) it was derived from.
type CloudMask [][]bool

// Count returns the number of true cells.
func (m CloudMask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// ScanReference identifies one archived scan. Immutable once discovered.
type ScanReference struct {
	Satellite string // platform bucket name, e.g. "noaa-goes19"
	Product   string // product code, e.g. "ABI-L2-MCMIPC"
	Path      string // full object key within the archive, including the satellite segment
}

// ObjectPath returns the object key with the leading satellite segment
// stripped, as used when addressing the object over HTTPS.
func (r ScanReference) ObjectPath() string {
	return strings.TrimPrefix(r.Path, r.Satellite+"/")
}

// Basename returns the final path element of the object key.
func (r ScanReference) Basename() string {
	p := r.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// Scan is one decoded satellite capture: named 2-D bands plus scalar
// metadata. Not mutated after load; classification only reads it.
type Scan struct {
	Bands map[string]Grid
	Attrs map[string]string
}

// Band returns the named band, if present.
func (s *Scan) Band(name string) (Grid, bool) {
	g, ok := s.Bands[name]
	return g, ok
}

// Attr returns the named metadata attribute, if present.
func (s *Scan) Attr(name string) (string, bool) {
	v, ok := s.Attrs[name]
	return v, ok
}

// LocalArtifact is a downloaded scan on the local filesystem. It is owned
// exclusively by the caller that requested the fetch, which must call Remove
// on every exit path. Dir is the per-request scratch directory holding the
// file, so concurrent requests never collide on a shared basename.
type LocalArtifact struct {
	Path string
	Dir  string
}

// Remove deletes the artifact and its scratch directory.
func (a LocalArtifact) Remove() error {
	if a.Dir != "" {
		return os.RemoveAll(a.Dir)
	}
	if a.Path != "" {
		return os.Remove(a.Path)
	}
	return nil
}

// CloudFractionResult is the outcome of classifying one scan. Percent is in
// [0,100], or NaN when the scan had no valid pixels to classify; NaN is a
// meaningful value and must not be coerced to 0.
type CloudFractionResult struct {
	Percent    float64
	Daytime    bool
	SourcePath string
}
