package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "confreport.dev/pkg/confreport/internal/model"
)

// maxInlineRows is the largest table printed directly; longer ones open a
// scrollable view.
const maxInlineRows = 15

// headerLines is the height of the table header including its bottom border.
const headerLines = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tableBorder  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplaySummary shows collector sizes as a styled table.
func (t *TUI) DisplaySummary(ctx context.Context, summary m.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	columns := []table.Column{
		{Title: "Collector", Width: 32},
		{Title: "Outcomes", Width: 10},
	}

	rows := []table.Row{
		{string(m.CategoryFailed), fmt.Sprintf("%d", summary.Failed)},
		{string(m.CategoryErrorKind), fmt.Sprintf("%d", summary.ErrorKind())},
		{string(m.CategorySkipped), fmt.Sprintf("%d", summary.Skipped)},
	}

	for _, g := range summary.Groups {
		rows = append(rows, table.Row{"  " + g.FileName, fmt.Sprintf("%d", g.Count)})
	}

	title := fmt.Sprintf("Run %s: %d outcome(s)", summary.RunID, summary.Total())

	return t.show(newTableModel(title, columns, rows))
}

// DisplayReports shows the written reports as a styled table.
func (t *TUI) DisplayReports(ctx context.Context, summary m.Summary, reports []m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintln(t.output(), mutedStyle.Render(noReportsMessage(summary)))
		return err
	}

	columns := []table.Column{
		{Title: "Report", Width: 28},
		{Title: "Category", Width: 12},
		{Title: "Rows", Width: 6},
		{Title: "Path", Width: 48},
	}

	rows := make([]table.Row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, table.Row{r.Name, string(r.Category), fmt.Sprintf("%d", r.Rows), string(r.Path)})
	}

	title := fmt.Sprintf("Run %s: %d report(s) written", summary.RunID, len(reports))

	return t.show(newTableModel(title, columns, rows))
}

// DisplayFailureDiffs prints colored unified diffs.
func (t *TUI) DisplayFailureDiffs(ctx context.Context, failures []m.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diffs, err := buildFailureDiffs(failures)
	if err != nil {
		return err
	}

	var b strings.Builder

	for _, d := range diffs {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(d.title))
		b.WriteString("\n")
		b.WriteString(colorDiff(d.diff))
	}

	_, err = fmt.Fprint(t.output(), b.String())

	return err
}

func colorDiff(diff string) string {
	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"):
			b.WriteString(mutedStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedStyle.Render(strings.TrimSuffix(line, "\n")))
		default:
			b.WriteString(strings.TrimSuffix(line, "\n"))
		}

		if strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (t *TUI) output() io.Writer {
	return t.cmd.OutOrStdout()
}

// show prints short tables and opens a scrollable program for long ones.
func (t *TUI) show(model tableModel) error {
	if !model.needsPagination() {
		_, err := fmt.Fprintln(t.output(), model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// The alternate screen is gone once the program exits; keep the title.
	_, err := fmt.Fprintln(t.output(), titleStyle.Render(model.title))

	return err
}

// tableModel is the Bubble Tea model wrapping a bubbles table.
type tableModel struct {
	title    string
	table    table.Model
	total    int
	quitting bool
}

func newTableModel(title string, columns []table.Column, rows []table.Row) tableModel {
	height := len(rows)
	if height > maxInlineRows {
		height = maxInlineRows
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height+headerLines),
		table.WithFocused(len(rows) > maxInlineRows),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	if len(rows) <= maxInlineRows {
		styles.Selected = styles.Cell
	}

	tbl.SetStyles(styles)

	return tableModel{
		title: title,
		table: tbl,
		total: len(rows),
	}
}

func (tm tableModel) needsPagination() bool {
	return tm.total > maxInlineRows
}

func (tm tableModel) Init() tea.Cmd {
	return nil
}

func (tm tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c", "enter":
			tm.quitting = true
			return tm, tea.Quit
		}
	}

	var cmd tea.Cmd

	tm.table, cmd = tm.table.Update(msg)

	return tm, cmd
}

func (tm tableModel) View() string {
	if tm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(tm.title))
	b.WriteString("\n")
	b.WriteString(tableBorder.Render(tm.table.View()))

	if tm.needsPagination() {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d rows  ↑/↓ scroll  q quit", tm.total)))
	}

	return b.String()
}
