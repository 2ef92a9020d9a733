package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confreport.dev/pkg/confreport/internal/adapter"
	"confreport.dev/pkg/confreport/internal/controller"
	"confreport.dev/pkg/confreport/internal/domain"
)

type cliFixture struct {
	templates string
	reports   string
	journal   string
}

func newCLIFixture(t *testing.T) cliFixture {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("CONFREPORT_LOG_FILENAME", filepath.Join(dir, "confreport.log"))

	f := cliFixture{
		templates: filepath.Join(dir, "templates"),
		reports:   filepath.Join(dir, "build", "reports"),
		journal:   filepath.Join(dir, "build", "outcomes.jsonl"),
	}

	require.NoError(t, os.MkdirAll(f.templates, 0o750))

	for _, name := range []string{domain.FailedTestsTemplate, domain.SkippedTestsTemplate, domain.ErrorKindTestsTemplate} {
		content := "<h1>FileName</h1><table><td></td></table>"
		require.NoError(t, os.WriteFile(filepath.Join(f.templates, name), []byte(content), 0o600))
	}

	return f
}

// run executes args against a fresh command tree so flag state never leaks
// between invocations.
func (f cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	root.AddCommand(newRecordCmd(), newGenerateCmd(), newListCmd(), newResetCmd())

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})

	previous := workflow
	workflow = domain.NewWorkflow(
		adapter.NewLocalOutcomeSource(),
		adapter.NewLocalOutcomeJournal(),
		adapter.NewLocalTemplateStore(),
		adapter.NewLocalReportWriter(),
		controller.NewSimpleUI(root),
	)

	t.Cleanup(func() { workflow = previous })

	full := []string{args[0], "--journal", f.journal, "--output", f.reports, "--templates", f.templates}
	root.SetArgs(append(full, args[1:]...))

	err := root.Execute()

	return out.String(), err
}

func (f cliFixture) record(t *testing.T, category string, fields ...string) {
	t.Helper()

	args := []string{"record", "--category", category}
	for _, field := range fields {
		args = append(args, "--field", field)
	}

	_, err := f.run(t, args...)
	require.NoError(t, err)
}

func (f cliFixture) readReport(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(f.reports, name+".html"))
	require.NoError(t, err)

	return string(content)
}

func (f cliFixture) reportFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(f.reports)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names
}

func TestGenerate_RecordedOutcomes(t *testing.T) {
	f := newCLIFixture(t)

	f.record(t, "failed", "fileName=lists.bal", "kind=output", "expectedLineNum=10", "actualLineNum=11", "expectedValue=1", "actualValue=2")
	f.record(t, "failed", "fileName=diag.bal", "kind=error", "absLineNum=7", "formatErrors=bad format")
	f.record(t, "error-kind", "fileName=maps.bal", "expectedLineNum=4", "actualLineNum=5", "actualValue=A", "expectedValue=E")
	f.record(t, "error-kind", "fileName=lists.test.bal", "expectedLineNum=1", "actualLineNum=1", "actualValue=X", "expectedValue=Y")
	f.record(t, "skipped", "fileName=skip.bal", "kind=output", "absLineNum=3")

	out, err := f.run(t, "generate")
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"failed_tests_summary.html", "skipped_tests_summary.html", "maps.html", "lists.html"},
		f.reportFiles(t),
	)

	failed := f.readReport(t, "failed_tests_summary")
	assert.Equal(t, "<h1>failed_tests_summary</h1><table>"+
		`<tr class="active-row"><td>lists.bal</td><td>output</td><td>10</td><td>11</td><td>1</td><td>2</td></tr>`+
		`<tr class="active-row"><td>diag.bal</td><td>error</td><td></td><td>7</td><td></td><td>bad format</td></tr>`+
		"</table>", failed)

	assert.Equal(t, "<h1>maps</h1><table>"+
		`<tr class="active-row"><td>4</td><td>5</td><td>A</td><td>E</td></tr>`+
		"</table>", f.readReport(t, "maps"))

	assert.Equal(t, "<h1>skipped_tests_summary</h1><table>"+
		`<tr class="active-row"><td>skip.bal</td><td>output</td><td>3</td></tr>`+
		"</table>", f.readReport(t, "skipped_tests_summary"))

	assert.Contains(t, out, "failed_tests_summary")
	assert.Contains(t, out, "TOTAL REPORTS 4")
}

func TestGenerate_FieldValuesKeptVerbatim(t *testing.T) {
	f := newCLIFixture(t)

	f.record(t, "failed", "fileName=a.bal", "kind=output", `expectedValue="quoted"`, `actualValue=["a", "b"]`)
	f.record(t, "failed", "fileName=b.bal", "kind=error", "absLineNum=4", "formatErrors=expected x = 1, got 2")

	_, err := f.run(t, "generate")
	require.NoError(t, err)

	failed := f.readReport(t, "failed_tests_summary")
	assert.Contains(t, failed, `<td>"quoted"</td><td>["a", "b"]</td>`)
	assert.Contains(t, failed, "<td>expected x = 1, got 2</td>")
}

func TestGenerate_NothingRecorded(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "generate")
	require.NoError(t, err)

	assert.Empty(t, f.reportFiles(t))
	assert.Contains(t, out, "No reports written")
}

func TestGenerate_InputFilesWithoutJournal(t *testing.T) {
	f := newCLIFixture(t)
	f.record(t, "failed", "fileName=journal.bal")

	input := filepath.Join(t.TempDir(), "outcomes.yaml")
	require.NoError(t, os.WriteFile(input, []byte(`
- category: skipped
  outcome:
    fileName: from-input.bal
    absLineNum: "9"
`), 0o600))

	_, err := f.run(t, "generate", "--no-journal", input)
	require.NoError(t, err)

	assert.Equal(t, []string{"skipped_tests_summary.html"}, f.reportFiles(t))
	assert.Contains(t, f.readReport(t, "skipped_tests_summary"), "from-input.bal")
}

func TestGenerate_MissingTemplates(t *testing.T) {
	f := newCLIFixture(t)
	require.NoError(t, os.RemoveAll(f.templates))
	f.record(t, "skipped", "fileName=skip.bal")

	out, err := f.run(t, "generate")
	require.ErrorIs(t, err, adapter.ErrTemplateUnavailable)
	assert.Empty(t, f.reportFiles(t))
	assert.Contains(t, out, "rendering failed")

	_, err = f.run(t, "generate", "--fallback-templates")
	require.NoError(t, err)

	report := f.readReport(t, "skipped_tests_summary")
	assert.Contains(t, report, "skip.bal")
	assert.Contains(t, report, "<title>skipped_tests_summary</title>")
}

func TestGenerate_EscapeHTML(t *testing.T) {
	f := newCLIFixture(t)
	f.record(t, "skipped", "fileName=<b>.bal")

	_, err := f.run(t, "generate", "--escape-html")
	require.NoError(t, err)

	assert.Contains(t, f.readReport(t, "skipped_tests_summary"), "<td>&lt;b&gt;.bal</td>")
}

func TestGenerate_Diff(t *testing.T) {
	f := newCLIFixture(t)
	f.record(t, "failed", "fileName=lists.bal", "expectedLineNum=2", "expectedValue=x", "actualValue=y")

	out, err := f.run(t, "generate", "--diff")
	require.NoError(t, err)

	assert.Contains(t, out, "lists.bal:2")
	assert.Contains(t, out, "+y")
}

func TestRecord_RejectsInvalidOutcomes(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run(t, "record", "--category", "passed", "--field", "fileName=a.bal")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = f.run(t, "record", "--category", "error-kind", "--field", "kind=error")
	require.ErrorIs(t, err, domain.ErrMissingFileName)

	_, err = f.run(t, "record", "--category", "error-kind", "--field", "fileName=")
	require.ErrorIs(t, err, domain.ErrMissingFileName)

	_, err = f.run(t, "record", "--field", "fileName=a.bal")
	require.Error(t, err)

	_, statErr := os.Stat(f.journal)
	assert.True(t, os.IsNotExist(statErr), "invalid outcomes must not create the journal")
}

func TestListAndReset(t *testing.T) {
	f := newCLIFixture(t)
	f.record(t, "error-kind", "fileName=maps.bal")
	f.record(t, "error-kind", "fileName=maps.bal")
	f.record(t, "skipped", "fileName=skip.bal")

	out, err := f.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "maps.bal")
	assert.Contains(t, out, "ERROR KIND FILE")

	_, err = f.run(t, "reset")
	require.NoError(t, err)

	out, err = f.run(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "No reports written")
	assert.Empty(t, f.reportFiles(t))
}

func TestGenerateCmd_Flags(t *testing.T) {
	cmd := newGenerateCmd()

	for _, name := range []string{fallbackTemplatesFlagName, escapeHTMLFlagName, diffFlagName, noJournalFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.True(t, strings.HasPrefix(cmd.Use, "generate"))
	assert.IsType(t, &cobra.Command{}, cmd)
}
