// Package main provides the CLI entry point for xrdtools-go.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xrdtools/xrdtools-go/pkg/xrdml"
	"github.com/xrdtools/xrdtools-go/pkg/xrdml/models"
	"github.com/xrdtools/xrdtools-go/pkg/xrdml/output"
)

var (
	outputDest string
	delimiter  string
	format     string
	rawCounts  bool
	noHeader   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xrdml [files...]",
		Short: "Export measurement data from XRDML files",
		Long: `xrdml parses PANalytical *.xrdml X-ray diffraction files and exports
the scan data as delimited text (or xlsx).`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outputDest, "output", "o", "", "Output destination: empty writes a .txt next to each input, 'stdout' or '-' writes to stdout, anything else is an output directory")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", " ", "Column delimiter for text output")
	rootCmd.Flags().StringVar(&format, "format", "txt", "Output format: txt, xlsx")
	rootCmd.Flags().BoolVar(&rawCounts, "raw-counts", false, "Keep raw counts instead of normalizing to counts per second")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Suppress the header comment line")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if format != "txt" && format != "xlsx" {
		return fmt.Errorf("invalid format: %s (must be txt or xlsx)", format)
	}
	toStdout := outputDest == "stdout" || outputDest == "-"
	if toStdout && format == "xlsx" {
		return fmt.Errorf("xlsx output requires a file destination")
	}

	if outputDest != "" && !toStdout {
		if err := os.MkdirAll(outputDest, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	opts := xrdml.Options{KeepRawCounts: rawCounts}
	cfg := output.Config{Delimiter: delimiter, NoHeader: noHeader}

	// One bad file must not block the rest of the batch.
	failed := 0
	for _, inputPath := range args {
		m, err := xrdml.ReadFile(inputPath, opts)
		if err != nil {
			slog.Error("failed to read file", "file", inputPath, "error", err)
			failed++
			continue
		}

		if toStdout {
			err = output.WriteText(os.Stdout, m, cfg)
		} else {
			err = writeFile(m, inputPath)
		}
		if err != nil {
			slog.Error("failed to export file", "file", inputPath, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// writeFile exports one measurement next to its input (or into the output
// directory), substituting the input extension with the format extension.
func writeFile(m *models.Measurement, inputPath string) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	dir := filepath.Dir(inputPath)
	if outputDest != "" {
		dir = outputDest
	}
	destPath := filepath.Join(dir, base+"."+format)

	if format == "xlsx" {
		return output.WriteXLSX(destPath, m)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg := output.Config{Delimiter: delimiter, NoHeader: noHeader}
	if err := output.WriteText(f, m, cfg); err != nil {
		return err
	}
	return f.Close()
}
