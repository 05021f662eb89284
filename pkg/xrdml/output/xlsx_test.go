package output

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	m := lineScan()
	path := filepath.Join(t.TempDir(), "scan.xlsx")

	if err := WriteXLSX(path, m); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open written file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("Expected header + 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "2Theta-Omega" || rows[0][1] != "Intensity" {
		t.Errorf("Header row = %v", rows[0])
	}
	if rows[1][0] != "15" || rows[1][1] != "50" {
		t.Errorf("First data row = %v", rows[1])
	}
}

func TestWriteXLSXInvalidMeasurement(t *testing.T) {
	m := lineScan()
	m.Data = m.Data[:2]

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := WriteXLSX(path, m); err == nil {
		t.Error("Expected error for mismatched arrays")
	}
}
