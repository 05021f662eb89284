// Package output serializes measurements to delimited text and xlsx.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
)

// Config configures the text writer.
type Config struct {
	// Delimiter separates the columns. Empty means a single space.
	Delimiter string
	// NoHeader suppresses the leading "#" comment line naming the columns.
	NoHeader bool
}

// DefaultConfig returns default writer configuration.
func DefaultConfig() Config {
	return Config{}
}

func (c Config) delimiter() string {
	if c.Delimiter == "" {
		return " "
	}
	return c.Delimiter
}

// WriteText writes the measurement as delimited text: a "#" header naming
// the columns, then one row per data point with values in fixed scientific
// notation. Line scans produce axis/intensity pairs; area measurements add
// the step axis as a middle column. If the writer fails mid-stream the
// output is left truncated; no cleanup is attempted.
func WriteText(w io.Writer, m *models.Measurement, cfg Config) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("cannot export measurement: %w", err)
	}

	delim := cfg.delimiter()
	bw := bufio.NewWriter(w)

	if !cfg.NoHeader {
		if m.Y != nil {
			fmt.Fprintf(bw, "# %s%s%s%sIntensity\n", m.XLabel, delim, m.YLabel, delim)
		} else {
			fmt.Fprintf(bw, "# %s%sIntensity\n", m.XLabel, delim)
		}
	}

	for i := range m.Data {
		if m.Y != nil {
			fmt.Fprintf(bw, "%.18e%s%.18e%s%.18e\n", m.X[i], delim, m.Y[i], delim, m.Data[i])
		} else {
			fmt.Fprintf(bw, "%.18e%s%.18e\n", m.X[i], delim, m.Data[i])
		}
	}

	return bw.Flush()
}
