// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/recruitready/compscore/internal/contract"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// getTerminalWidth resolves the output width: flag override first, then the
// detected terminal size, then a conservative default for CI pipes.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}

// maxTableLabelWidth calculates the maximum width for the leading label column
// (category keys, profile IDs) in table output based on terminal width and the
// fixed numeric columns.
func maxTableLabelWidth(cfg *contract.Config) int {
	termWidth := getTerminalWidth(cfg)

	// Reserve space for the numeric columns with borders and padding.
	available := termWidth - 45
	if available < 12 {
		// Minimum reasonable label width
		return 12
	}
	if available > 48 {
		// Maximum label width to prevent overly wide tables
		return 48
	}
	return available
}

// createFormatters builds the float and int format helpers for the configured
// precision.
func createFormatters(precision int) (func(float64) string, string) {
	floatFmt := fmt.Sprintf("%%.%df", precision)
	fmtFloat := func(v float64) string {
		return fmt.Sprintf(floatFmt, v)
	}
	return fmtFloat, "%d"
}

// writeWithFile writes either to stdout or to the named file, printing a
// short confirmation when a file is used.
func writeWithFile(outputFile string, write func(io.Writer) error, doneMsg string) error {
	if outputFile == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", outputFile, err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return err
	}
	fmt.Printf("%s to %s\n", doneMsg, outputFile)
	return nil
}
