package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"confreport.dev/pkg/confreport/internal/adapter"
	m "confreport.dev/pkg/confreport/internal/model"
)

const (
	// FailedTestsTemplate is the template file of the failed tests report.
	FailedTestsTemplate = "failed_tests_report_template.html"
	// SkippedTestsTemplate is the template file of the skipped tests report.
	SkippedTestsTemplate = "skipped_tests_report_template.html"
	// ErrorKindTestsTemplate is the template file of the per-file error-kind reports.
	ErrorKindTestsTemplate = "error_kind_tests_report_template.html"

	// DefaultRowsPlaceholder marks where rows go in a template.
	DefaultRowsPlaceholder = "<td></td>"
	// DefaultNamePlaceholder marks where the report name goes in a template.
	DefaultNamePlaceholder = "FileName"
)

// RenderOptions configures a Renderer.
type RenderOptions struct {
	TemplateDir     m.Path
	ReportDir       m.Path
	RowsPlaceholder string
	NamePlaceholder string
	EscapeHTML      bool
}

// Renderer turns the collectors of a Run into HTML reports.
type Renderer struct {
	templates adapter.TemplateStore
	writer    adapter.ReportWriter
	opts      RenderOptions
	rows      rowBuilder
}

// NewRenderer creates a Renderer. Empty placeholders fall back to the defaults.
func NewRenderer(templates adapter.TemplateStore, writer adapter.ReportWriter, opts RenderOptions) *Renderer {
	if opts.RowsPlaceholder == "" {
		opts.RowsPlaceholder = DefaultRowsPlaceholder
	}

	if opts.NamePlaceholder == "" {
		opts.NamePlaceholder = DefaultNamePlaceholder
	}

	return &Renderer{
		templates: templates,
		writer:    writer,
		opts:      opts,
		rows:      rowBuilder{escape: opts.EscapeHTML},
	}
}

// Generate writes one report per non-empty collector, and one per error-kind
// file group. Every step is attempted; a step stops at its first error and
// the errors of all steps are joined. Reports written before a failure are
// returned alongside the error.
func (r *Renderer) Generate(ctx context.Context, run *Run) ([]m.Report, error) {
	steps := []func(*Run) ([]m.Report, error){
		r.failedReport,
		r.errorKindReports,
		r.skippedReport,
	}

	var (
		reports []m.Report
		errs    []error
	)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		written, err := step(run)
		reports = append(reports, written...)

		if err != nil {
			errs = append(errs, err)
		}
	}

	slog.Info("report generation finished", "run", run.ID(), "reports", len(reports), "failed", len(errs) > 0)

	return reports, errors.Join(errs...)
}

func (r *Renderer) failedReport(run *Run) ([]m.Report, error) {
	failures := run.Failures()
	if failures.IsEmpty() {
		return nil, nil
	}

	template, err := r.templates.Load(r.opts.TemplateDir, FailedTestsTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed tests report: %w", err)
	}

	outcomes := failures.All()
	rows := r.rows.fragment(outcomes, rowBuilder.failed)

	report, err := r.write(m.CategoryFailed, template, m.FailedSummaryName, rows, len(outcomes))
	if err != nil {
		return nil, err
	}

	return []m.Report{report}, nil
}

func (r *Renderer) errorKindReports(run *Run) ([]m.Report, error) {
	errorKinds := run.ErrorKinds()
	if errorKinds.IsEmpty() {
		return nil, nil
	}

	template, err := r.templates.Load(r.opts.TemplateDir, ErrorKindTestsTemplate)
	if err != nil {
		return nil, fmt.Errorf("error kind report: %w", err)
	}

	groups := errorKinds.Groups()
	reports := make([]m.Report, 0, len(groups))

	for _, group := range groups {
		rows := r.rows.fragment(group.Outcomes, rowBuilder.errorKind)

		report, err := r.write(m.CategoryErrorKind, template, reportName(group.FileName), rows, len(group.Outcomes))
		if err != nil {
			return reports, err
		}

		reports = append(reports, report)
	}

	return reports, nil
}

func (r *Renderer) skippedReport(run *Run) ([]m.Report, error) {
	skips := run.Skips()
	if skips.IsEmpty() {
		return nil, nil
	}

	template, err := r.templates.Load(r.opts.TemplateDir, SkippedTestsTemplate)
	if err != nil {
		return nil, fmt.Errorf("skipped tests report: %w", err)
	}

	outcomes := skips.All()
	rows := r.rows.fragment(outcomes, rowBuilder.skipped)

	report, err := r.write(m.CategorySkipped, template, m.SkippedSummaryName, rows, len(outcomes))
	if err != nil {
		return nil, err
	}

	return []m.Report{report}, nil
}

func (r *Renderer) write(category m.Category, template, name, rows string, count int) (m.Report, error) {
	content := r.substitute(template, rows, name)

	path, err := r.writer.WriteReport(r.opts.ReportDir, name, content)
	if err != nil {
		return m.Report{}, fmt.Errorf("%s report %q: %w", category, name, err)
	}

	slog.Debug("rendered report", "category", category, "name", name, "rows", count, "path", path)

	return m.Report{Category: category, Name: name, Path: path, Rows: count}, nil
}

// substitute replaces every rows and name placeholder of template in a single
// pass. Replacement text is inserted literally and never rescanned.
func (r *Renderer) substitute(template, rows, name string) string {
	return strings.NewReplacer(
		r.opts.RowsPlaceholder, rows,
		r.opts.NamePlaceholder, name,
	).Replace(template)
}
