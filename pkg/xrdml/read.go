package xrdml

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
	"github.com/xrdtools/xrdtools-go/pkg/xrdml/parser"
)

// ReadFile reads a measurement from an XRDML file. A path without an
// extension gets ".xrdml" appended. Open failures are returned as plain I/O
// errors; anything past a successful open is a *ParseError.
func ReadFile(path string, opts Options) (*models.Measurement, error) {
	if filepath.Ext(path) == "" {
		path += ".xrdml"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f, opts)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Filename = path
		}
		return nil, err
	}
	m.Filename = path
	return m, nil
}

// Read reads a measurement from an XRDML stream.
func Read(r io.Reader, opts Options) (*models.Measurement, error) {
	doc, err := parser.Decode(r)
	if err != nil {
		return nil, NewParseError("", "document", fmt.Errorf("%w: %v", ErrInvalidDocument, err))
	}
	return assemble(doc, opts)
}

func assemble(doc *parser.Document, opts Options) (*models.Measurement, error) {
	if len(doc.Measurements) == 0 {
		return nil, NewParseError("", "document", ErrNoScanData)
	}
	meas := doc.Measurements[0]
	if len(meas.Scans) == 0 {
		return nil, NewParseError("", "document", ErrNoScanData)
	}

	m := &models.Measurement{
		Status: doc.Status,
		Type:   models.MeasurementType(meas.MeasurementType),
	}
	if doc.Sample != nil {
		m.Sample = doc.Sample.ID
	}
	if doc.Comment != nil && len(doc.Comment.Entries) > 0 {
		m.Comment = doc.Comment.Entries[0]
	}
	if meas.MeasurementType != string(models.TypeScan) && meas.MeasurementType != string(models.TypeRepeatedScan) {
		m.StepAxis = meas.MeasurementStepAxis
	}

	rows, err := collectScans(meas, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewParseError("", "scan", ErrNoScanData)
	}

	m.ScanAxis = rows[0].Axis
	m.Timestamp = rows[0].StartTime
	m.Rows = len(rows)
	m.PointsPerRow = len(rows[0].Intensities)

	if ref := meas.Scans[0].Reflection; ref != nil {
		m.Substrate = ref.Material
		if ref.HKL != nil {
			m.HKL = &models.HKL{H: ref.HKL.H, K: ref.HKL.K, L: ref.HKL.L}
		}
	}

	if err := flattenRows(m, rows); err != nil {
		return nil, err
	}

	if m.Type == models.TypeRepeatedScan {
		averageRows(m)
	}

	if err := resolveAxes(m, rows); err != nil {
		return nil, err
	}

	if meas.UsedWavelength != nil {
		m.Wavelength = resolveWavelength(meas.UsedWavelength)
	}
	if bp := meas.IncidentBeamPath; bp != nil {
		if bp.Mask != nil && bp.Mask.Width != nil {
			if w, err := bp.Mask.Width.Float(); err == nil {
				m.MaskWidth = &w
			}
		}
		if bp.DivergenceSlit != nil && bp.DivergenceSlit.Height != nil {
			if h, err := bp.DivergenceSlit.Height.Float(); err == nil {
				m.SlitHeight = &h
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, NewParseError("", "scan", err)
	}
	return m, nil
}

// collectScans extracts all scans and keeps the completed ones. When every
// scan is incomplete and there is exactly one, it is used anyway.
func collectScans(meas parser.Measurement, opts Options) ([]*parser.ScanData, error) {
	var complete, incomplete []*parser.ScanData
	for i, scan := range meas.Scans {
		sd, err := parser.ExtractScan(scan, opts.ShouldNormalize())
		if err != nil {
			return nil, NewParseError("", fmt.Sprintf("scan %d", i), err)
		}
		if meas.MeasurementType == string(models.TypeScan) || sd.Status == "Completed" || opts.ShouldIncludeIncomplete() {
			complete = append(complete, sd)
		} else {
			incomplete = append(incomplete, sd)
		}
	}
	if len(complete) == 0 && len(incomplete) == 1 {
		complete = incomplete
	}

	for i, row := range complete {
		if len(row.Intensities) != len(complete[0].Intensities) {
			return nil, NewParseError("", fmt.Sprintf("scan %d", i),
				fmt.Errorf("%d data points, scan 0 has %d", len(row.Intensities), len(complete[0].Intensities)))
		}
	}
	return complete, nil
}

// flattenRows concatenates intensities and counting times row by row.
func flattenRows(m *models.Measurement, rows []*parser.ScanData) error {
	n := m.Rows * m.PointsPerRow
	m.Data = make([]float64, 0, n)
	for _, row := range rows {
		m.Data = append(m.Data, row.Intensities...)
	}

	// A counting time common to every point collapses to a single value.
	common := len(rows[0].Time) == 1
	for _, row := range rows {
		if !common {
			break
		}
		if len(row.Time) != 1 || row.Time[0] != rows[0].Time[0] {
			common = false
		}
	}
	switch {
	case len(rows[0].Time) == 0:
	case common:
		m.Time = []float64{rows[0].Time[0]}
	default:
		m.Time = make([]float64, 0, n)
		for _, row := range rows {
			if len(row.Time) == 1 {
				for i := 0; i < m.PointsPerRow; i++ {
					m.Time = append(m.Time, row.Time[0])
				}
				continue
			}
			m.Time = append(m.Time, row.Time...)
		}
	}
	return nil
}

// averageRows folds the repetitions of a repeated scan into one averaged row.
// The intensities are already counts per second, so the mean is taken; the
// effective counting time accumulates over the repetitions, per point when
// the scans recorded per-point times.
func averageRows(m *models.Measurement) {
	if m.Rows <= 1 {
		return
	}
	avg := make([]float64, m.PointsPerRow)
	for r := 0; r < m.Rows; r++ {
		for i := 0; i < m.PointsPerRow; i++ {
			avg[i] += m.Data[r*m.PointsPerRow+i]
		}
	}
	for i := range avg {
		avg[i] /= float64(m.Rows)
	}
	m.Data = avg

	switch len(m.Time) {
	case 1:
		m.Time[0] *= float64(m.Rows)
	case m.Rows * m.PointsPerRow:
		total := make([]float64, m.PointsPerRow)
		for r := 0; r < m.Rows; r++ {
			for i := 0; i < m.PointsPerRow; i++ {
				total[i] += m.Time[r*m.PointsPerRow+i]
			}
		}
		m.Time = total
	}
	m.Rows = 1
}

// resolveAxes picks the scan (and, for area measurements, step) axis values
// and labels from the per-scan positions.
func resolveAxes(m *models.Measurement, rows []*parser.ScanData) error {
	xType := scanAxisType(m.ScanAxis)
	if xType == "" {
		return NewParseError("", "positions", fmt.Errorf("%w: unsupported scan axis %q", ErrNoScanAxis, m.ScanAxis))
	}
	m.XLabel = scanAxisLabel(m.ScanAxis)

	x, unit, err := axisColumn(rows, xType, m.PointsPerRow, m.Rows)
	if err != nil {
		return err
	}
	m.X = x
	m.XUnit = unit

	if m.Type == models.TypeAreaMeasurement {
		yType := scanAxisType(m.StepAxis)
		if yType == "" {
			return NewParseError("", "positions", fmt.Errorf("%w: unsupported step axis %q", ErrNoScanAxis, m.StepAxis))
		}
		m.YLabel = scanAxisLabel(m.StepAxis)

		y, unit, err := axisColumn(rows, yType, m.PointsPerRow, m.Rows)
		if err != nil {
			return err
		}
		m.Y = y
		m.YUnit = unit
	}

	// The repeated-scan average keeps a single row of axis values.
	if m.Rows == 1 && len(m.X) > m.PointsPerRow {
		m.X = m.X[:m.PointsPerRow]
	}
	return nil
}

// axisColumn flattens the positions of one axis across all scan rows.
func axisColumn(rows []*parser.ScanData, axis string, perRow, nRows int) ([]float64, string, error) {
	out := make([]float64, 0, perRow*nRows)
	unit := ""
	for _, row := range rows {
		pos, ok := row.Axes[axis]
		if !ok {
			return nil, "", NewParseError("", "positions", fmt.Errorf("%w: axis %q not recorded", ErrNoScanAxis, axis))
		}
		if unit == "" {
			unit = pos.Unit
		}
		out = append(out, pos.Expand(perRow)...)
	}
	return out, unit, nil
}

// scanAxisType maps a scanAxis (or measurementStepAxis) name to the
// positions axis holding its values.
func scanAxisType(name string) string {
	switch name {
	case "Gonio", "2Theta", "2Theta-Omega":
		return "2Theta"
	case "Omega", "Omega-2Theta", "Reciprocal Space":
		return "Omega"
	case "Phi", "Psi", "X", "Y", "Z":
		return name
	}
	return ""
}

// scanAxisLabel maps a scanAxis name to its display label.
func scanAxisLabel(name string) string {
	switch name {
	case "Gonio":
		return "2Theta-Theta"
	case "Reciprocal Space":
		return "Omega"
	}
	return name
}

// resolveWavelength derives the effective wavelength from the intended type:
// K-Alpha 1 uses kAlpha1 directly, K-Alpha uses the ratio-weighted mean of
// kAlpha1 and kAlpha2, anything else falls back to kAlpha1.
func resolveWavelength(w *parser.UsedWavelength) models.Wavelength {
	out := models.Wavelength{
		KType:               w.Intended,
		KAlpha1:             w.KAlpha1,
		KAlpha2:             w.KAlpha2,
		KBeta:               w.KBeta,
		RatioKAlpha2KAlpha1: w.RatioKAlpha2KAlpha1,
	}
	switch w.Intended {
	case "K-Alpha 1":
		out.Lambda = w.KAlpha1
	case "K-Alpha":
		out.Lambda = (w.KAlpha1 + w.RatioKAlpha2KAlpha1*w.KAlpha2) / 1.5
	default:
		out.Lambda = w.KAlpha1
	}
	return out
}
