package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	m "confreport.dev/pkg/confreport/internal/model"
)

func renderOne(render func(rowBuilder, *strings.Builder, m.Outcome), b rowBuilder, o m.Outcome) string {
	var sb strings.Builder
	render(b, &sb, o)

	return sb.String()
}

func TestSkippedRow(t *testing.T) {
	got := renderOne(rowBuilder.skipped, rowBuilder{}, m.Outcome{
		m.FieldFileName:   "foo.bal",
		m.FieldKind:       "skip",
		m.FieldAbsLineNum: "12",
	})

	assert.Equal(t, `<tr class="active-row"><td>foo.bal</td><td>skip</td><td>12</td></tr>`, got)
}

func TestFailedRow_ValueMismatch(t *testing.T) {
	got := renderOne(rowBuilder.failed, rowBuilder{}, m.Outcome{
		m.FieldFileName:        "lists.bal",
		m.FieldKind:            "output",
		m.FieldExpectedLineNum: "10",
		m.FieldActualLineNum:   "11",
		m.FieldExpectedValue:   "[1, 2]",
		m.FieldActualValue:     "[2, 1]",
	})

	assert.Equal(t, `<tr class="active-row">`+
		`<td>lists.bal</td><td>output</td><td>10</td><td>11</td><td>[1, 2]</td><td>[2, 1]</td>`+
		`</tr>`, got)
}

func TestFailedRow_DiagnosticMismatchWinsOverValues(t *testing.T) {
	got := renderOne(rowBuilder.failed, rowBuilder{}, m.Outcome{
		m.FieldFileName:        "maps.bal",
		m.FieldKind:            "error",
		m.FieldAbsLineNum:      "42",
		m.FieldExpectedLineNum: "10",
		m.FieldActualLineNum:   "11",
		m.FieldExpectedValue:   "ignored",
		m.FieldActualValue:     "ignored too",
		m.FieldFormatErrors:    "invalid diagnostic format",
	})

	assert.Equal(t, `<tr class="active-row">`+
		`<td>maps.bal</td><td>error</td><td></td><td>42</td><td></td><td>invalid diagnostic format</td>`+
		`</tr>`, got)
}

func TestFailedRow_MissingFieldsRenderEmptyCells(t *testing.T) {
	got := renderOne(rowBuilder.failed, rowBuilder{}, m.Outcome{m.FieldFileName: "a.bal"})

	assert.Equal(t, `<tr class="active-row"><td>a.bal</td><td></td><td></td><td></td><td></td><td></td></tr>`, got)
	assert.Equal(t, 6, strings.Count(got, "<td>"))
}

func TestErrorKindRow_KeepsHistoricalColumnOrder(t *testing.T) {
	got := renderOne(rowBuilder.errorKind, rowBuilder{}, m.Outcome{
		m.FieldFileName:        "bar.bal",
		m.FieldExpectedLineNum: "3",
		m.FieldActualLineNum:   "4",
		m.FieldActualValue:     "{ballerina}IndexOutOfRange",
		m.FieldExpectedValue:   "index out of range",
	})

	assert.Equal(t, `<tr class="active-row">`+
		`<td>3</td><td>4</td><td>{ballerina}IndexOutOfRange</td><td>index out of range</td>`+
		`</tr>`, got)
}

func TestRow_EscapeHTML(t *testing.T) {
	o := m.Outcome{m.FieldFileName: "a.bal", m.FieldKind: "<output>", m.FieldAbsLineNum: "1"}

	raw := renderOne(rowBuilder.skipped, rowBuilder{}, o)
	escaped := renderOne(rowBuilder.skipped, rowBuilder{escape: true}, o)

	assert.Contains(t, raw, "<td><output></td>")
	assert.Contains(t, escaped, "<td>&lt;output&gt;</td>")
}

func TestFragment_ConcatenatesWithoutSeparator(t *testing.T) {
	outcomes := []m.Outcome{
		{m.FieldFileName: "a.bal", m.FieldKind: "k", m.FieldAbsLineNum: "1"},
		{m.FieldFileName: "b.bal", m.FieldKind: "k", m.FieldAbsLineNum: "2"},
	}

	got := rowBuilder{}.fragment(outcomes, rowBuilder.skipped)

	assert.Equal(t,
		`<tr class="active-row"><td>a.bal</td><td>k</td><td>1</td></tr>`+
			`<tr class="active-row"><td>b.bal</td><td>k</td><td>2</td></tr>`, got)
}

func TestReportName(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"bar.bal", "bar"},
		{"lists-1.bal", "lists-1"},
		{"a.b.bal", "a"},
		{"noext", "noext"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, reportName(tt.fileName))
		})
	}
}
