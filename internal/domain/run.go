package domain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	m "confreport.dev/pkg/confreport/internal/model"
)

var (
	// ErrUnknownCategory is returned when an entry names no known collector.
	ErrUnknownCategory = errors.New("unknown outcome category")
	// ErrMissingFileName is returned for error-kind outcomes without a file name.
	ErrMissingFileName = errors.New("error-kind outcome has no file name")
)

// Run is the context of one conformance test run. It owns the collectors the
// runner appends to and that the Renderer consumes at the end.
type Run struct {
	id         string
	failures   FailureCollector
	skips      SkipCollector
	errorKinds ErrorKindCollector
}

// NewRun creates an empty Run with a fresh ID.
func NewRun() *Run {
	return &Run{id: uuid.NewString()}
}

// ID identifies the run in logs.
func (r *Run) ID() string {
	return r.id
}

// Failures returns the failed-test collector.
func (r *Run) Failures() *FailureCollector {
	return &r.failures
}

// Skips returns the skipped-test collector.
func (r *Run) Skips() *SkipCollector {
	return &r.skips
}

// ErrorKinds returns the error-kind collector.
func (r *Run) ErrorKinds() *ErrorKindCollector {
	return &r.errorKinds
}

// Record routes entry to the collector of its category.
func (r *Run) Record(entry m.Entry) error {
	switch entry.Category {
	case m.CategoryFailed:
		r.failures.Record(entry.Outcome)
	case m.CategorySkipped:
		r.skips.Record(entry.Outcome)
	case m.CategoryErrorKind:
		if entry.Outcome.Get(m.FieldFileName) == "" {
			return ErrMissingFileName
		}

		r.errorKinds.Record(entry.Outcome)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, entry.Category)
	}

	slog.Debug("recorded outcome", "run", r.id, "category", entry.Category,
		"file", entry.Outcome.Get(m.FieldFileName))

	return nil
}

// RecordAll records entries in order and stops at the first invalid one.
func (r *Run) RecordAll(entries []m.Entry) error {
	for i, entry := range entries {
		if err := r.Record(entry); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return nil
}

// Summary reports the collector sizes.
func (r *Run) Summary() m.Summary {
	groups := r.errorKinds.Groups()

	counts := make([]m.GroupCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, m.GroupCount{FileName: g.FileName, Count: len(g.Outcomes)})
	}

	return m.Summary{
		RunID:   r.id,
		Failed:  r.failures.Len(),
		Skipped: r.skips.Len(),
		Groups:  counts,
	}
}
