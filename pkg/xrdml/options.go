// Package xrdml reads PANalytical XRDML X-ray diffraction files.
package xrdml

// Options configures reading behavior.
type Options struct {
	// KeepRawCounts disables the counts-per-second normalization. By default
	// intensities recorded with unit "counts" are divided by the counting
	// time of each point; intensities already recorded in cps are never
	// touched.
	KeepRawCounts bool
	// IncludeIncomplete also collects scans whose status is not "Completed".
	// If nil, only the default promotion rule applies: when a file contains
	// exactly one scan and it is incomplete, that scan is used anyway.
	IncludeIncomplete *bool
}

// DefaultOptions returns default reading options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldNormalize returns whether counts are normalized to counts per second.
func (o Options) ShouldNormalize() bool {
	return !o.KeepRawCounts
}

// ShouldIncludeIncomplete returns whether incomplete scans are collected.
func (o Options) ShouldIncludeIncomplete() bool {
	if o.IncludeIncomplete != nil {
		return *o.IncludeIncomplete
	}
	return false
}
