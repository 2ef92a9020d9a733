package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	m "confreport.dev/pkg/confreport/internal/model"
)

const htmlExtension = ".html"

// ReportWriter persists rendered reports.
type ReportWriter interface {
	// WriteReport writes content to dir/name.html, replacing any existing file,
	// and returns the written path. dir must already exist.
	WriteReport(dir m.Path, name string, content string) (m.Path, error)
}

// LocalReportWriter writes reports to the local filesystem.
type LocalReportWriter struct{}

// NewLocalReportWriter constructs a LocalReportWriter.
func NewLocalReportWriter() *LocalReportWriter {
	return &LocalReportWriter{}
}

// WriteReport implements ReportWriter.
func (w *LocalReportWriter) WriteReport(dir m.Path, name string, content string) (_ m.Path, err error) {
	target := filepath.Join(string(dir), name+htmlExtension)

	// #nosec G304 - report path is built from the configured output directory
	file, err := os.Create(target)
	if err != nil {
		slog.Error("failed to create report", "path", target, "error", err)
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			slog.Error("failed to close report", "path", target, "error", closeErr)
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()

	if _, err := io.WriteString(file, content); err != nil {
		slog.Error("failed to write report", "path", target, "error", err)
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	slog.Debug("wrote report", "path", target, "bytes", len(content))

	return m.Path(target), nil
}
