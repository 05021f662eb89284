package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// AxisNames lists the goniometer and stage axes a scan may record.
var AxisNames = []string{"2Theta", "Omega", "Phi", "Psi", "X", "Y", "Z"}

// AxisPositions holds the resolved positions of one axis within a scan.
type AxisPositions struct {
	// Axis is the axis name (e.g. "2Theta").
	Axis string
	// Unit is the axis unit attribute (commonly "deg" or "mm").
	Unit string
	// Values holds one position per data point, or a single value when the
	// axis was fixed for the whole scan.
	Values []float64
	// Common reports whether the axis was fixed (Values has length 1).
	Common bool
}

// Expand returns per-point values, broadcasting a common position to n points.
func (a AxisPositions) Expand(n int) []float64 {
	if !a.Common {
		return a.Values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = a.Values[0]
	}
	return out
}

// SplitValues parses a whitespace-separated list of floats, as found in
// <intensities>, <listPositions> and <countingTimes> blobs.
func SplitValues(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Linspace returns n evenly spaced values from start to end inclusive.
func Linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// ReadAxis resolves the positions of one axis for a scan of n data points.
// The schema allows three encodings: an explicit list, a start/end pair that
// spans the scan linearly, or a single common position.
func ReadAxis(pos Positions, n int) (AxisPositions, error) {
	out := AxisPositions{Axis: pos.Axis, Unit: pos.Unit}

	switch {
	case pos.ListPositions != nil:
		values, err := SplitValues(*pos.ListPositions)
		if err != nil {
			return out, fmt.Errorf("axis %s: %w", pos.Axis, err)
		}
		if len(values) != n {
			return out, fmt.Errorf("axis %s: %d positions for %d data points: %w", pos.Axis, len(values), n, ErrAxisMismatch)
		}
		out.Values = values
	case pos.StartPosition != nil || pos.EndPosition != nil:
		if pos.StartPosition == nil || pos.EndPosition == nil {
			return out, fmt.Errorf("axis %s: start/end positions must both be present", pos.Axis)
		}
		start, err := parseFloat(*pos.StartPosition)
		if err != nil {
			return out, fmt.Errorf("axis %s: start position: %w", pos.Axis, err)
		}
		end, err := parseFloat(*pos.EndPosition)
		if err != nil {
			return out, fmt.Errorf("axis %s: end position: %w", pos.Axis, err)
		}
		out.Values = Linspace(start, end, n)
	case pos.CommonPosition != nil:
		v, err := parseFloat(*pos.CommonPosition)
		if err != nil {
			return out, fmt.Errorf("axis %s: common position: %w", pos.Axis, err)
		}
		out.Values = []float64{v}
		out.Common = true
	default:
		return out, fmt.Errorf("axis %s: no position encoding", pos.Axis)
	}

	return out, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
