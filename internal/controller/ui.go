// Package controller renders run summaries and generated reports for the user.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "confreport.dev/pkg/confreport/internal/model"
)

// UI defines how results are shown to the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplaySummary shows how many outcomes each collector holds.
	DisplaySummary(ctx context.Context, summary m.Summary) error
	// DisplayReports lists the reports written by a run.
	DisplayReports(ctx context.Context, summary m.Summary, reports []m.Report) error
	// DisplayFailureDiffs shows expected and actual values of failed outcomes side by side.
	DisplayFailureDiffs(ctx context.Context, failures []m.Outcome) error
}

// NewUI picks the TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
