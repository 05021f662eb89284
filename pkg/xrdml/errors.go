package xrdml

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument indicates the input is not well-formed XRDML XML.
var ErrInvalidDocument = errors.New("invalid xrdml document")

// ErrNoScanData indicates a well-formed document with no usable scan.
var ErrNoScanData = errors.New("no scan data")

// ErrNoScanAxis indicates that the scan axis positions cannot be resolved.
var ErrNoScanAxis = errors.New("unresolved scan axis")

// ParseError represents a failure to parse one XRDML file.
type ParseError struct {
	Filename string
	Element  string // "document", "scan", "positions", "wavelength"
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("parse error (%s): %v", e.Element, e.Err)
	}
	return fmt.Sprintf("parse error in %q (%s): %v", e.Filename, e.Element, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(filename, element string, err error) *ParseError {
	return &ParseError{
		Filename: filename,
		Element:  element,
		Err:      err,
	}
}
