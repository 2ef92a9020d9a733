package model

const (
	// FailedSummaryName is the logical name of the failed tests report.
	FailedSummaryName = "failed_tests_summary"
	// SkippedSummaryName is the logical name of the skipped tests report.
	SkippedSummaryName = "skipped_tests_summary"
)

// Report describes one HTML file written by a run.
type Report struct {
	Category Category
	Name     string // logical report name, also the file base name
	Path     Path
	Rows     int
}

// GroupCount holds the number of error-kind outcomes recorded for one file.
type GroupCount struct {
	FileName string
	Count    int
}

// Summary holds the collector sizes of a run.
type Summary struct {
	RunID   string
	Failed  int
	Skipped int
	Groups  []GroupCount
}

// ErrorKind returns the total number of error-kind outcomes across groups.
func (s Summary) ErrorKind() int {
	total := 0
	for _, g := range s.Groups {
		total += g.Count
	}

	return total
}

// Total returns the number of outcomes across every category.
func (s Summary) Total() int {
	return s.Failed + s.Skipped + s.ErrorKind()
}
