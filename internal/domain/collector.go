package domain

import (
	m "confreport.dev/pkg/confreport/internal/model"
)

// FailureCollector accumulates failed-test outcomes in record order.
type FailureCollector struct {
	outcomes []m.Outcome
}

// Record appends outcome. Nothing is validated; missing fields render as empty cells.
func (c *FailureCollector) Record(outcome m.Outcome) {
	c.outcomes = append(c.outcomes, outcome.Clone())
}

// IsEmpty reports whether no outcome was recorded.
func (c *FailureCollector) IsEmpty() bool {
	return len(c.outcomes) == 0
}

// Len returns the number of recorded outcomes.
func (c *FailureCollector) Len() int {
	return len(c.outcomes)
}

// All returns the recorded outcomes in record order.
func (c *FailureCollector) All() []m.Outcome {
	return append([]m.Outcome(nil), c.outcomes...)
}

// SkipCollector accumulates skipped-test outcomes in record order.
type SkipCollector struct {
	outcomes []m.Outcome
}

// Record appends outcome.
func (c *SkipCollector) Record(outcome m.Outcome) {
	c.outcomes = append(c.outcomes, outcome.Clone())
}

// IsEmpty reports whether no outcome was recorded.
func (c *SkipCollector) IsEmpty() bool {
	return len(c.outcomes) == 0
}

// Len returns the number of recorded outcomes.
func (c *SkipCollector) Len() int {
	return len(c.outcomes)
}

// All returns the recorded outcomes in record order.
func (c *SkipCollector) All() []m.Outcome {
	return append([]m.Outcome(nil), c.outcomes...)
}

// Group holds the error-kind outcomes recorded for one source file.
type Group struct {
	FileName string
	Outcomes []m.Outcome
}

// ErrorKindCollector groups error-kind outcomes by file name. Groups keep the
// order in which their file name was first seen.
type ErrorKindCollector struct {
	groups []Group
	index  map[string]int
}

// Record appends outcome to the group of its file name, creating the group
// at the end of the order on first sight.
func (c *ErrorKindCollector) Record(outcome m.Outcome) {
	if c.index == nil {
		c.index = make(map[string]int)
	}

	fileName := outcome.Get(m.FieldFileName)

	i, ok := c.index[fileName]
	if !ok {
		i = len(c.groups)
		c.index[fileName] = i
		c.groups = append(c.groups, Group{FileName: fileName})
	}

	c.groups[i].Outcomes = append(c.groups[i].Outcomes, outcome.Clone())
}

// IsEmpty reports whether no outcome was recorded.
func (c *ErrorKindCollector) IsEmpty() bool {
	return len(c.groups) == 0
}

// Groups returns the groups in first-seen order.
func (c *ErrorKindCollector) Groups() []Group {
	groups := make([]Group, len(c.groups))
	for i, g := range c.groups {
		groups[i] = Group{
			FileName: g.FileName,
			Outcomes: append([]m.Outcome(nil), g.Outcomes...),
		}
	}

	return groups
}
