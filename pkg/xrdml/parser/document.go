// Package parser decodes the XRDML XML schema into raw document structs and
// extracts per-scan numeric data from them.
package parser

import (
	"encoding/xml"
	"io"
)

// Document mirrors the top-level <xrdMeasurements> element.
type Document struct {
	XMLName      xml.Name      `xml:"xrdMeasurements"`
	Status       string        `xml:"status,attr"`
	Sample       *Sample       `xml:"sample"`
	Comment      *Comment      `xml:"comment"`
	Measurements []Measurement `xml:"xrdMeasurement"`
}

// Sample mirrors the <sample> element.
type Sample struct {
	Type string `xml:"type,attr"`
	ID   string `xml:"id"`
	Name string `xml:"name"`
}

// Comment mirrors the <comment> element.
type Comment struct {
	Entries []string `xml:"entry"`
}

// Measurement mirrors one <xrdMeasurement> element.
type Measurement struct {
	MeasurementType     string          `xml:"measurementType,attr"`
	MeasurementStepAxis string          `xml:"measurementStepAxis,attr"`
	Status              string          `xml:"status,attr"`
	UsedWavelength      *UsedWavelength `xml:"usedWavelength"`
	IncidentBeamPath    *BeamPath       `xml:"incidentBeamPath"`
	Scans               []Scan          `xml:"scan"`
}

// UsedWavelength mirrors the <usedWavelength> element.
type UsedWavelength struct {
	Intended            string  `xml:"intended,attr"`
	KAlpha1             float64 `xml:"kAlpha1"`
	KAlpha2             float64 `xml:"kAlpha2"`
	KBeta               float64 `xml:"kBeta"`
	RatioKAlpha2KAlpha1 float64 `xml:"ratioKAlpha2KAlpha1"`
}

// BeamPath mirrors the <incidentBeamPath> element; only the optics this
// package reports on are decoded.
type BeamPath struct {
	Mask *struct {
		Width *UnitValue `xml:"width"`
	} `xml:"mask"`
	DivergenceSlit *struct {
		Height *UnitValue `xml:"height"`
	} `xml:"divergenceSlit"`
}

// UnitValue is a numeric element carrying a unit attribute. The value is
// kept as raw text because chardata only decodes into strings.
type UnitValue struct {
	Unit string `xml:"unit,attr"`
	Text string `xml:",chardata"`
}

// Float parses the element text as a float.
func (u UnitValue) Float() (float64, error) {
	return parseFloat(u.Text)
}

// Scan mirrors one <scan> element.
type Scan struct {
	AppendNumber string      `xml:"appendNumber,attr"`
	Mode         string      `xml:"mode,attr"`
	ScanAxis     string      `xml:"scanAxis,attr"`
	Status       string      `xml:"status,attr"`
	Header       *ScanHeader `xml:"header"`
	Reflection   *Reflection `xml:"reflection"`
	DataPoints   *DataPoints `xml:"dataPoints"`
}

// ScanHeader mirrors the <header> element of a scan.
type ScanHeader struct {
	StartTimeStamp string `xml:"startTimeStamp"`
	EndTimeStamp   string `xml:"endTimeStamp"`
	Author         string `xml:"author>name"`
}

// Reflection mirrors the <reflection> element.
type Reflection struct {
	Material string `xml:"material"`
	HKL      *struct {
		H int `xml:"h"`
		K int `xml:"k"`
		L int `xml:"l"`
	} `xml:"hkl"`
}

// DataPoints mirrors the <dataPoints> element.
type DataPoints struct {
	Positions          []Positions `xml:"positions"`
	CommonCountingTime string      `xml:"commonCountingTime"`
	CountingTimes      string      `xml:"countingTimes"`
	Intensities        *ValueList  `xml:"intensities"`
}

// Positions mirrors one <positions> element describing one axis.
type Positions struct {
	Axis           string  `xml:"axis,attr"`
	Unit           string  `xml:"unit,attr"`
	ListPositions  *string `xml:"listPositions"`
	StartPosition  *string `xml:"startPosition"`
	EndPosition    *string `xml:"endPosition"`
	CommonPosition *string `xml:"commonPosition"`
}

// ValueList is a whitespace-separated numeric blob carrying a unit attribute.
type ValueList struct {
	Unit string `xml:"unit,attr"`
	Text string `xml:",chardata"`
}

// Decode reads one XRDML document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
