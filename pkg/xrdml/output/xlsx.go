package output

import (
	"fmt"

	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the sheet name holding the exported data points.
const xlsxSheet = "Sheet1"

// WriteXLSX writes the measurement as an xlsx workbook: a header row naming
// the columns, then one row per data point.
func WriteXLSX(path string, m *models.Measurement) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("cannot export measurement: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{m.XLabel, "Intensity"}
	if m.Y != nil {
		header = []interface{}{m.XLabel, m.YLabel, "Intensity"}
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	for i := range m.Data {
		row := []interface{}{m.X[i], m.Data[i]}
		if m.Y != nil {
			row = []interface{}{m.X[i], m.Y[i], m.Data[i]}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
