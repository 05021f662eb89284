// Package models defines data structures for XRDML measurements.
package models

import "fmt"

// MeasurementType identifies the kind of measurement recorded in a file.
type MeasurementType string

const (
	// TypeScan is a single line scan (one intensity per scan-axis position).
	TypeScan MeasurementType = "Scan"
	// TypeRepeatedScan is the same line scan acquired several times; the
	// completed repetitions are averaged into one intensity array.
	TypeRepeatedScan MeasurementType = "Repeated scan"
	// TypeAreaMeasurement is a reciprocal-space map: several scans stepped
	// along a second axis, forming a grid of intensities.
	TypeAreaMeasurement MeasurementType = "Area measurement"
)

// HKL holds Miller indices of the reflection the measurement was aligned on.
type HKL struct {
	// H is the h Miller index.
	H int `json:"h"`
	// K is the k Miller index.
	K int `json:"k"`
	// L is the l Miller index.
	L int `json:"l"`
}

// Wavelength holds the X-ray wavelength settings of the measurement.
type Wavelength struct {
	// KType is the intended wavelength type (e.g. "K-Alpha 1").
	KType string `json:"k_type"`
	// KAlpha1 is the K-Alpha1 wavelength in Angstrom.
	KAlpha1 float64 `json:"k_alpha1"`
	// KAlpha2 is the K-Alpha2 wavelength in Angstrom.
	KAlpha2 float64 `json:"k_alpha2"`
	// KBeta is the K-Beta wavelength in Angstrom.
	KBeta float64 `json:"k_beta"`
	// RatioKAlpha2KAlpha1 is the intensity ratio K-Alpha2/K-Alpha1.
	RatioKAlpha2KAlpha1 float64 `json:"ratio_k_alpha2_k_alpha1"`
	// Lambda is the effective wavelength in Angstrom derived from KType.
	Lambda float64 `json:"lambda"`
}

// Measurement is the parsed content of one XRDML file.
//
// All point arrays (X, Y, Data, and a full-length Time) are ordered by
// acquisition and have equal length; area measurements are stored flattened
// row by row with Rows and PointsPerRow carrying the grid shape. A
// Measurement is built once by the parser and not mutated afterwards.
type Measurement struct {
	// Filename is the path the measurement was read from (empty for streams).
	Filename string `json:"filename,omitempty"`
	// Sample is the sample id recorded by the instrument.
	Sample string `json:"sample,omitempty"`
	// Status is the measurement status attribute (e.g. "Completed").
	Status string `json:"status,omitempty"`
	// Comment is the first comment entry of the file.
	Comment string `json:"comment,omitempty"`
	// Timestamp is the start time stamp of the first scan, as recorded.
	Timestamp string `json:"timestamp,omitempty"`
	// Type is the measurement type.
	Type MeasurementType `json:"type"`
	// ScanAxis is the scan axis name (e.g. "2Theta-Omega").
	ScanAxis string `json:"scan_axis"`
	// StepAxis is the step axis name for multi-scan measurements.
	StepAxis string `json:"step_axis,omitempty"`
	// XLabel is the display label of the scan axis.
	XLabel string `json:"x_label"`
	// XUnit is the unit of the scan axis (commonly "deg").
	XUnit string `json:"x_unit"`
	// YLabel is the display label of the step axis (area measurements only).
	YLabel string `json:"y_label,omitempty"`
	// YUnit is the unit of the step axis (area measurements only).
	YUnit string `json:"y_unit,omitempty"`
	// X contains the scan-axis position of every data point.
	X []float64 `json:"x"`
	// Y contains the step-axis position of every data point; nil for line scans.
	Y []float64 `json:"y,omitempty"`
	// Data contains the intensity of every data point, in counts per second
	// unless normalization was disabled.
	Data []float64 `json:"data"`
	// Time contains the counting time per point: empty if unknown, one value
	// if common to all points, otherwise one per point.
	Time []float64 `json:"time,omitempty"`
	// Wavelength holds the wavelength settings.
	Wavelength Wavelength `json:"wavelength"`
	// Substrate is the reflection material, when recorded.
	Substrate string `json:"substrate,omitempty"`
	// HKL holds the reflection Miller indices, when recorded.
	HKL *HKL `json:"hkl,omitempty"`
	// MaskWidth is the incident beam mask width in mm, when present.
	MaskWidth *float64 `json:"mask_width,omitempty"`
	// SlitHeight is the divergence slit height in mm, when present.
	SlitHeight *float64 `json:"slit_height,omitempty"`
	// Rows is the number of scan rows (1 for line scans).
	Rows int `json:"rows"`
	// PointsPerRow is the number of data points per scan row.
	PointsPerRow int `json:"points_per_row"`
}

// Len returns the number of data points.
func (m *Measurement) Len() int {
	return len(m.Data)
}

// Validate checks the internal length consistency of the measurement.
func (m *Measurement) Validate() error {
	n := len(m.Data)
	if n == 0 {
		return fmt.Errorf("measurement has no intensity data")
	}
	if len(m.X) != n {
		return fmt.Errorf("axis length %d does not match %d data points", len(m.X), n)
	}
	if m.Y != nil && len(m.Y) != n {
		return fmt.Errorf("step axis length %d does not match %d data points", len(m.Y), n)
	}
	switch len(m.Time) {
	case 0, 1, n:
	default:
		return fmt.Errorf("counting time length %d does not match %d data points", len(m.Time), n)
	}
	if m.Rows > 0 && m.PointsPerRow > 0 && m.Rows*m.PointsPerRow != n {
		return fmt.Errorf("grid shape %dx%d does not match %d data points", m.Rows, m.PointsPerRow, n)
	}
	return nil
}
