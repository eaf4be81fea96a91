package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/khoj-tools/lostfoundscan/internal/config"
	"github.com/khoj-tools/lostfoundscan/internal/report"
)

// openOutput returns the writer for record or summary output and a
// close function. When cfg.OutputFile is set the file is created with
// owner-only permissions, since output carries personal data; otherwise
// stdout is used and close is a no-op.
func openOutput(cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.OutputFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newWriter builds the report writer matching the configured output
// format. CSV is the default.
func newWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewCSVWriter(out)
	}
}
