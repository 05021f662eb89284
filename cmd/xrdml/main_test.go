package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validXRDML = `<?xml version="1.0" encoding="UTF-8"?>
<xrdMeasurements xmlns="http://www.xrdml.com/XRDMeasurement/1.5" status="Completed">
 <xrdMeasurement measurementType="Scan" status="Completed">
  <usedWavelength intended="K-Alpha 1">
   <kAlpha1 unit="Angstrom">1.540598</kAlpha1>
   <kAlpha2 unit="Angstrom">1.544426</kAlpha2>
   <kBeta unit="Angstrom">1.392250</kBeta>
   <ratioKAlpha2KAlpha1>0.5</ratioKAlpha2KAlpha1>
  </usedWavelength>
  <scan mode="Continuous" scanAxis="2Theta-Omega" status="Completed">
   <dataPoints>
    <positions axis="2Theta" unit="deg">
     <startPosition>15.0</startPosition>
     <endPosition>20.0</endPosition>
    </positions>
    <commonCountingTime unit="seconds">1.0</commonCountingTime>
    <intensities unit="counts">100 200 300 400 500</intensities>
   </dataPoints>
  </scan>
 </xrdMeasurement>
</xrdMeasurements>`

func resetFlags() {
	outputDest = ""
	delimiter = " "
	format = "txt"
	rawCounts = false
	noHeader = false
}

func TestRunMixedBatch(t *testing.T) {
	resetFlags()
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "good.xrdml")
	if err := os.WriteFile(goodPath, []byte(validXRDML), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	badPath := filepath.Join(dir, "bad.xrdml")
	if err := os.WriteFile(badPath, []byte("<xrdMeasurements><unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	// One malformed file must not block the valid one, but must fail the run.
	err := run(nil, []string{goodPath, badPath})
	if err == nil {
		t.Fatal("Expected error for a batch containing a malformed file")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("Error = %q, expected one failure out of two files", err)
	}

	out, readErr := os.ReadFile(filepath.Join(dir, "good.txt"))
	if readErr != nil {
		t.Fatalf("Valid file was not exported: %v", readErr)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected header + 5 rows, got %d lines", len(lines))
	}
	if lines[0] != "# 2Theta-Omega Intensity" {
		t.Errorf("Header = %q", lines[0])
	}
	if lines[1] != "1.500000000000000000e+01 1.000000000000000000e+02" {
		t.Errorf("Row 1 = %q", lines[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.txt")); !os.IsNotExist(err) {
		t.Error("Malformed file must not produce output")
	}
}

func TestRunOutputDirectory(t *testing.T) {
	resetFlags()
	dir := t.TempDir()

	inputPath := filepath.Join(dir, "scan.xrdml")
	if err := os.WriteFile(inputPath, []byte(validXRDML), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	outputDest = filepath.Join(dir, "out")
	delimiter = ","

	if err := run(nil, []string{inputPath}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(outputDest, "scan.txt"))
	if err != nil {
		t.Fatalf("Output file missing: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if got := len(strings.Split(line, ",")); got != 2 {
			t.Errorf("Expected 2 comma-separated fields, got %d in %q", got, line)
		}
	}
}

func TestRunInvalidFormat(t *testing.T) {
	resetFlags()
	format = "json"
	if err := run(nil, []string{"whatever.xrdml"}); err == nil {
		t.Error("Expected error for invalid format")
	}

	resetFlags()
	format = "xlsx"
	outputDest = "stdout"
	if err := run(nil, []string{"whatever.xrdml"}); err == nil {
		t.Error("Expected error for xlsx to stdout")
	}
}
