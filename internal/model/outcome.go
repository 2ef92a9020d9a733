// Package model defines the data structures for conformance test reports.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Path represents a file system path.
type Path string

// Field names a value carried by an Outcome.
type Field string

const (
	// FieldFileName is the conformance test source file, e.g. "lists.bal".
	FieldFileName Field = "fileName"
	// FieldKind is the test kind reported by the runner (output, error, panic...).
	FieldKind Field = "kind"
	// FieldAbsLineNum is the absolute line number of the test case in its file.
	FieldAbsLineNum Field = "absLineNum"
	// FieldActualLineNum is the line the runner observed.
	FieldActualLineNum Field = "actualLineNum"
	// FieldExpectedLineNum is the line the test case declared.
	FieldExpectedLineNum Field = "expectedLineNum"
	// FieldActualValue is the observed output or error message.
	FieldActualValue Field = "actualValue"
	// FieldExpectedValue is the declared output or error description.
	FieldExpectedValue Field = "expectedValue"
	// FieldFormatErrors holds diagnostic-format text. Its presence marks a
	// diagnostic mismatch rather than a value mismatch.
	FieldFormatErrors Field = "formatErrors"
)

// Outcome is one test case's recorded result.
type Outcome map[Field]string

// Get returns the value of f, or "" when it is absent.
func (o Outcome) Get(f Field) string {
	return o[f]
}

// Lookup returns the value of f and whether it was set.
func (o Outcome) Lookup(f Field) (string, bool) {
	v, ok := o[f]
	return v, ok
}

// Clone returns a copy that shares no storage with o.
func (o Outcome) Clone() Outcome {
	if o == nil {
		return Outcome{}
	}

	c := make(Outcome, len(o))
	for k, v := range o {
		c[k] = v
	}

	return c
}

// UnmarshalYAML drops fields set to null, so an explicit null reads the same
// as an absent field.
func (o *Outcome) UnmarshalYAML(value *yaml.Node) error {
	var raw map[Field]*string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*o = fromNullable(raw)

	return nil
}

// UnmarshalJSON drops fields set to null, like UnmarshalYAML.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw map[Field]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = fromNullable(raw)

	return nil
}

func fromNullable(raw map[Field]*string) Outcome {
	if raw == nil {
		return nil
	}

	o := make(Outcome, len(raw))
	for k, v := range raw {
		if v != nil {
			o[k] = *v
		}
	}

	return o
}

// Category tells which collector an Outcome belongs to.
type Category string

const (
	// CategoryFailed marks a value or diagnostic-format mismatch.
	CategoryFailed Category = "failed"
	// CategorySkipped marks a test the runner did not execute.
	CategorySkipped Category = "skipped"
	// CategoryErrorKind marks an error-kind verification result.
	CategoryErrorKind Category = "error-kind"
)

// Categories lists every known category in rendering order.
var Categories = []Category{CategoryFailed, CategoryErrorKind, CategorySkipped}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFailed, CategorySkipped, CategoryErrorKind:
		return true
	}

	return false
}

// Entry pairs an Outcome with its category. It is the unit stored in the
// outcome journal and read from input files.
type Entry struct {
	Category Category `json:"category" yaml:"category"`
	Outcome  Outcome  `json:"outcome"  yaml:"outcome"`
}
