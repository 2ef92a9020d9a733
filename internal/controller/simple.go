package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "confreport.dev/pkg/confreport/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySummary prints collector sizes and the error-kind groups.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(summary))

	if len(summary.Groups) > 0 {
		s.printf("\n%s", renderGroupTable(summary.Groups))
	}

	return nil
}

// DisplayReports prints the written reports.
func (s *SimpleUI) DisplayReports(ctx context.Context, summary m.Summary, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		s.printf("%s\n", noReportsMessage(summary))
		return nil
	}

	s.printf("\n%s", renderReportTable(reports))

	return nil
}

// DisplayFailureDiffs prints a unified diff per value mismatch.
func (s *SimpleUI) DisplayFailureDiffs(ctx context.Context, failures []m.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diffs, err := buildFailureDiffs(failures)
	if err != nil {
		return err
	}

	for _, d := range diffs {
		s.printf("\n%s\n%s", d.title, d.diff)
	}

	return nil
}

// noReportsMessage explains an empty report list. A run that holds outcomes
// but wrote nothing failed to render.
func noReportsMessage(summary m.Summary) string {
	if summary.Total() > 0 {
		return fmt.Sprintf("No reports written: run %s holds %d outcome(s) but rendering failed", summary.RunID, summary.Total())
	}

	return fmt.Sprintf("No reports written: run %s recorded no failed, skipped or error-kind outcomes", summary.RunID)
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Category", "Outcomes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{string(m.CategoryFailed), fmt.Sprintf("%d", summary.Failed)})
	table.Append([]string{string(m.CategoryErrorKind), fmt.Sprintf("%d", summary.ErrorKind())})
	table.Append([]string{string(m.CategorySkipped), fmt.Sprintf("%d", summary.Skipped)})

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})

	table.Render()

	return tableBuffer.String()
}

func renderGroupTable(groups []m.GroupCount) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Error kind file", "Outcomes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, g := range groups {
		table.Append([]string{g.FileName, fmt.Sprintf("%d", g.Count)})
	}

	table.Render()

	return tableBuffer.String()
}

func renderReportTable(reports []m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Report", "Category", "Rows", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	rows := 0

	for _, r := range reports {
		table.Append([]string{r.Name, string(r.Category), fmt.Sprintf("%d", r.Rows), string(r.Path)})

		rows += r.Rows
	}

	table.SetFooter([]string{fmt.Sprintf("Total Reports %d", len(reports)), "", fmt.Sprintf("%d", rows), ""})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
