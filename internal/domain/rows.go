package domain

import (
	"html"
	"strings"

	m "confreport.dev/pkg/confreport/internal/model"
)

const (
	startTableRow = `<tr class="active-row">`
	endTableRow   = "</tr>"
	startCell     = "<td>"
	endCell       = "</td>"
)

// rowBuilder renders outcomes as HTML table rows.
type rowBuilder struct {
	escape bool
}

func (b rowBuilder) row(sb *strings.Builder, cells ...string) {
	size := len(startTableRow) + len(endTableRow)
	for _, c := range cells {
		size += len(startCell) + len(c) + len(endCell)
	}

	sb.Grow(size)
	sb.WriteString(startTableRow)

	for _, c := range cells {
		if b.escape {
			c = html.EscapeString(c)
		}

		sb.WriteString(startCell)
		sb.WriteString(c)
		sb.WriteString(endCell)
	}

	sb.WriteString(endTableRow)
}

// failed writes a six-cell row. Outcomes carrying diagnostic-format text put
// the absolute line in the actual-line column and the diagnostics in the
// actual-output column, leaving both expected columns empty.
func (b rowBuilder) failed(sb *strings.Builder, o m.Outcome) {
	if diagnostics, ok := o.Lookup(m.FieldFormatErrors); ok {
		b.row(sb,
			o.Get(m.FieldFileName),
			o.Get(m.FieldKind),
			"",
			o.Get(m.FieldAbsLineNum),
			"",
			diagnostics,
		)

		return
	}

	b.row(sb,
		o.Get(m.FieldFileName),
		o.Get(m.FieldKind),
		o.Get(m.FieldExpectedLineNum),
		o.Get(m.FieldActualLineNum),
		o.Get(m.FieldExpectedValue),
		o.Get(m.FieldActualValue),
	)
}

func (b rowBuilder) skipped(sb *strings.Builder, o m.Outcome) {
	b.row(sb,
		o.Get(m.FieldFileName),
		o.Get(m.FieldKind),
		o.Get(m.FieldAbsLineNum),
	)
}

// errorKind keeps the historical column order: the actual error message
// precedes the expected description.
func (b rowBuilder) errorKind(sb *strings.Builder, o m.Outcome) {
	b.row(sb,
		o.Get(m.FieldExpectedLineNum),
		o.Get(m.FieldActualLineNum),
		o.Get(m.FieldActualValue),
		o.Get(m.FieldExpectedValue),
	)
}

func (b rowBuilder) fragment(outcomes []m.Outcome, render func(rowBuilder, *strings.Builder, m.Outcome)) string {
	var sb strings.Builder
	for _, o := range outcomes {
		render(b, &sb, o)
	}

	return sb.String()
}

// reportName strips the extension from a source file name: everything from
// the first '.' on is dropped. Names without a dot are kept whole.
func reportName(fileName string) string {
	if i := strings.IndexByte(fileName, '.'); i >= 0 {
		return fileName[:i]
	}

	return fileName
}
