package controller

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	m "confreport.dev/pkg/confreport/internal/model"
)

const diffContextLines = 3

// failureDiff holds the unified diff of one value-mismatch outcome.
type failureDiff struct {
	title string
	diff  string
}

// buildFailureDiffs diffs expected against actual values. Diagnostic-format
// mismatches carry no expected value and are skipped.
func buildFailureDiffs(failures []m.Outcome) ([]failureDiff, error) {
	diffs := make([]failureDiff, 0, len(failures))

	for _, o := range failures {
		if _, ok := o.Lookup(m.FieldFormatErrors); ok {
			continue
		}

		expected := o.Get(m.FieldExpectedValue)
		actual := o.Get(m.FieldActualValue)

		if expected == actual {
			continue
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expected + "\n"),
			B:        difflib.SplitLines(actual + "\n"),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  diffContextLines,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to diff %s: %w", o.Get(m.FieldFileName), err)
		}

		diffs = append(diffs, failureDiff{
			title: fmt.Sprintf("%s:%s (%s)", o.Get(m.FieldFileName), o.Get(m.FieldExpectedLineNum), o.Get(m.FieldKind)),
			diff:  text,
		})
	}

	return diffs, nil
}
