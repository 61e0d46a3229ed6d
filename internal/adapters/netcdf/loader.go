// Package netcdf decodes GOES ABI NetCDF files into domain scans.
package netcdf

import (
	"fmt"
	"math"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"github.com/jobrunner/nimbus/internal/domain"
)

// DefaultBandPrefix matches the Cloud & Moisture Imagery variables of ABI
// L2 multi-band products (CMI_C01 through CMI_C16).
const DefaultBandPrefix = "CMI_"

// Loader implements ScanLoader over NetCDF-4 files using the pure-Go
// go-native-netcdf reader. ABI L2 products store Cloud & Moisture Imagery
// as packed int16 with scale/offset attributes; the loader unpacks them to
// physical float64 values with NaN for fill pixels.
type Loader struct {
	bandPrefix string
}

// NewLoader creates a loader that decodes every 2-D variable whose name
// carries the given prefix (e.g. "CMI_"). An empty prefix decodes all 2-D
// variables.
func NewLoader(bandPrefix string) *Loader {
	return &Loader{bandPrefix: bandPrefix}
}

// Load opens a local NetCDF file and returns its bands and global string
// attributes. Non-2-D variables and non-numeric types are skipped.
func (l *Loader) Load(path string) (*domain.Scan, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	defer nc.Close()

	scan := &domain.Scan{
		Bands: map[string]domain.Grid{},
		Attrs: map[string]string{},
	}

	globals := nc.Attributes()
	for _, key := range globals.Keys() {
		if v, ok := globals.Get(key); ok {
			if s, ok := toString(v); ok {
				scan.Attrs[key] = s
			}
		}
	}

	for _, name := range nc.ListVariables() {
		if l.bandPrefix != "" && !strings.HasPrefix(name, l.bandPrefix) {
			continue
		}
		vr, err := nc.GetVariable(name)
		if err != nil {
			return nil, &domain.LoadError{Path: path, Err: fmt.Errorf("variable %s: %w", name, err)}
		}
		grid, ok := decodeBand(vr)
		if !ok {
			continue
		}
		scan.Bands[name] = grid
	}

	return scan, nil
}

// decodeBand unpacks one variable into a grid. Returns false for variables
// that are not 2-D numeric data.
func decodeBand(vr *api.Variable) (domain.Grid, bool) {
	var p packing
	if vr.Attributes != nil {
		if v, ok := vr.Attributes.Get("_FillValue"); ok {
			p.fill, p.hasFill = toFloat(v)
		}
		if v, ok := vr.Attributes.Get("scale_factor"); ok {
			p.scale, p.hasScale = toFloat(v)
		}
		if v, ok := vr.Attributes.Get("add_offset"); ok {
			p.offset, _ = toFloat(v)
		}
	}
	return unpackGrid(vr.Values, p)
}

// packing describes how raw stored values map to physical values.
type packing struct {
	fill     float64
	hasFill  bool
	scale    float64
	hasScale bool
	offset   float64
}

// apply converts one raw stored value to its physical value.
func (p packing) apply(raw float64) float64 {
	if p.hasFill && raw == p.fill {
		return math.NaN()
	}
	if p.hasScale {
		return raw*p.scale + p.offset
	}
	return raw
}

// unpackGrid converts raw 2-D variable values into a physical-unit grid.
func unpackGrid(values interface{}, p packing) (domain.Grid, bool) {
	switch vals := values.(type) {
	case [][]float64:
		return convertGrid(vals, p, func(v float64) float64 { return v }), true
	case [][]float32:
		return convertGrid(vals, p, func(v float32) float64 { return float64(v) }), true
	case [][]int16:
		return convertGrid(vals, p, func(v int16) float64 { return float64(v) }), true
	case [][]uint16:
		return convertGrid(vals, p, func(v uint16) float64 { return float64(v) }), true
	case [][]int32:
		return convertGrid(vals, p, func(v int32) float64 { return float64(v) }), true
	case [][]int8:
		return convertGrid(vals, p, func(v int8) float64 { return float64(v) }), true
	default:
		return nil, false
	}
}

func convertGrid[T any](rows [][]T, p packing, toF func(T) float64) domain.Grid {
	grid := make(domain.Grid, len(rows))
	for i, row := range rows {
		grid[i] = make([]float64, len(row))
		for j, v := range row {
			grid[i][j] = p.apply(toF(v))
		}
	}
	return grid
}

// toFloat coerces a scalar attribute value, which the reader may surface
// as a bare scalar or a single-element slice, to float64.
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case int:
		return float64(x), true
	case []float64:
		if len(x) == 1 {
			return x[0], true
		}
	case []float32:
		if len(x) == 1 {
			return float64(x[0]), true
		}
	case []int16:
		if len(x) == 1 {
			return float64(x[0]), true
		}
	case []int32:
		if len(x) == 1 {
			return float64(x[0]), true
		}
	}
	return 0, false
}

// toString coerces a string attribute value.
func toString(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []string:
		if len(x) == 1 {
			return x[0], true
		}
	}
	return "", false
}
