package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"confreport.dev/pkg/confreport/internal/adapter"
	m "confreport.dev/pkg/confreport/internal/model"
)

type memTemplateStore struct {
	templates map[string]string
	loads     map[string]int
}

func newMemTemplateStore(templates map[string]string) *memTemplateStore {
	return &memTemplateStore{templates: templates, loads: map[string]int{}}
}

func (s *memTemplateStore) Load(dir m.Path, name string) (string, error) {
	s.loads[name]++

	content, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", adapter.ErrTemplateUnavailable, dir, name)
	}

	return content, nil
}

type memReportWriter struct {
	reports map[string]string
	order   []string
	failOn  string
}

func newMemReportWriter() *memReportWriter {
	return &memReportWriter{reports: map[string]string{}}
}

var errDiskFull = errors.New("disk full")

func (w *memReportWriter) WriteReport(dir m.Path, name string, content string) (m.Path, error) {
	if name == w.failOn {
		return "", errDiskFull
	}

	w.reports[name] = content
	w.order = append(w.order, name)

	return m.Path(string(dir) + "/" + name + ".html"), nil
}

type memOutcomeSource struct {
	files map[m.Path][]m.Entry
}

func (s *memOutcomeSource) LoadFile(path m.Path) ([]m.Entry, error) {
	entries, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file %s", path)
	}

	return entries, nil
}

type memJournal struct {
	entries map[m.Path][]m.Entry
}

func newMemJournal() *memJournal {
	return &memJournal{entries: map[m.Path][]m.Entry{}}
}

func (j *memJournal) Append(path m.Path, entry m.Entry) error {
	j.entries[path] = append(j.entries[path], entry)
	return nil
}

func (j *memJournal) Load(path m.Path) ([]m.Entry, error) {
	return j.entries[path], nil
}

func (j *memJournal) Reset(path m.Path) error {
	delete(j.entries, path)
	return nil
}

type recordingUI struct {
	summaries []m.Summary
	reports   []m.Report
	diffs     int
}

func (u *recordingUI) DisplaySummary(_ context.Context, summary m.Summary) error {
	u.summaries = append(u.summaries, summary)
	return nil
}

func (u *recordingUI) DisplayReports(_ context.Context, summary m.Summary, reports []m.Report) error {
	u.summaries = append(u.summaries, summary)
	u.reports = append(u.reports, reports...)

	return nil
}

func (u *recordingUI) DisplayFailureDiffs(_ context.Context, failures []m.Outcome) error {
	u.diffs += len(failures)
	return nil
}

const testTemplate = "<h1>FileName</h1><table><td></td></table><footer>FileName</footer>"

func allTemplates() map[string]string {
	return map[string]string{
		FailedTestsTemplate:    testTemplate,
		SkippedTestsTemplate:   testTemplate,
		ErrorKindTestsTemplate: testTemplate,
	}
}

func countRows(html string) int {
	return strings.Count(html, startTableRow)
}
