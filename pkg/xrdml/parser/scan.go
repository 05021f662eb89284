package parser

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoDataPoints indicates a scan without a <dataPoints> section.
var ErrNoDataPoints = errors.New("missing dataPoints")

// ErrNoIntensities indicates a dataPoints section without intensity values.
var ErrNoIntensities = errors.New("missing intensities")

// ErrAxisMismatch indicates axis positions that do not match the data point count.
var ErrAxisMismatch = errors.New("axis length does not match data points")

// ScanData holds the numeric content of one <scan>.
type ScanData struct {
	// Status is the scan status attribute (e.g. "Completed").
	Status string
	// Axis is the scan axis attribute (e.g. "2Theta-Omega").
	Axis string
	// StartTime is the scan start time stamp, when recorded.
	StartTime string
	// Intensities holds one intensity per data point, in counts per second
	// when normalization was applied.
	Intensities []float64
	// IntensityUnit is the unit the intensities were recorded in.
	IntensityUnit string
	// Time holds the counting time: one value if common, else one per point.
	Time []float64
	// Axes maps axis name to resolved positions.
	Axes map[string]AxisPositions
}

// ExtractScan pulls intensities, counting times and axis positions out of one
// scan element. When normalize is true and the intensities were recorded as
// raw counts, each point is divided by its counting time to yield counts per
// second; intensities already recorded in cps are left untouched.
func ExtractScan(scan Scan, normalize bool) (*ScanData, error) {
	dp := scan.DataPoints
	if dp == nil {
		return nil, ErrNoDataPoints
	}
	if dp.Intensities == nil {
		return nil, ErrNoIntensities
	}

	data, err := SplitValues(dp.Intensities.Text)
	if err != nil {
		return nil, fmt.Errorf("intensities: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoIntensities
	}

	out := &ScanData{
		Status:        scan.Status,
		Axis:          scan.ScanAxis,
		Intensities:   data,
		IntensityUnit: dp.Intensities.Unit,
		Axes:          make(map[string]AxisPositions),
	}
	if scan.Header != nil {
		out.StartTime = scan.Header.StartTimeStamp
	}

	// Pre-set counts scans record one counting time per point; all other
	// modes record a single common counting time.
	timeText := dp.CommonCountingTime
	if scan.Mode == "Pre-set counts" {
		timeText = dp.CountingTimes
	}
	out.Time, err = SplitValues(timeText)
	if err != nil {
		return nil, fmt.Errorf("counting time: %w", err)
	}

	if normalize && dp.Intensities.Unit == "counts" {
		if len(out.Time) == 0 {
			return nil, fmt.Errorf("intensities in counts without counting time")
		}
		for i := range out.Intensities {
			t := out.Time[0]
			if len(out.Time) > 1 {
				if len(out.Time) != len(out.Intensities) {
					return nil, fmt.Errorf("%d counting times for %d data points", len(out.Time), len(out.Intensities))
				}
				t = out.Time[i]
			}
			out.Intensities[i] /= t
		}
	}

	n := len(out.Intensities)
	for _, pos := range dp.Positions {
		if !slices.Contains(AxisNames, pos.Axis) {
			continue
		}
		axis, err := ReadAxis(pos, n)
		if err != nil {
			return nil, err
		}
		out.Axes[axis.Axis] = axis
	}

	return out, nil
}
