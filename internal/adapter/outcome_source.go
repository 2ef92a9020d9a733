package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "confreport.dev/pkg/confreport/internal/model"
	"confreport.dev/pkg/confreport/pkg"
)

// OutcomeSource loads recorded outcomes produced outside the process.
type OutcomeSource interface {
	// LoadFile decodes a YAML or JSON document holding a list of entries.
	LoadFile(path m.Path) ([]m.Entry, error)
}

// OutcomeJournal persists entries across invocations of the CLI.
type OutcomeJournal interface {
	// Append adds entry to the journal at path, creating it when missing.
	Append(path m.Path, entry m.Entry) error
	// Load returns every entry in append order. A missing journal holds no entries.
	Load(path m.Path) ([]m.Entry, error)
	// Reset removes every entry from the journal at path.
	Reset(path m.Path) error
}

// LocalOutcomeSource reads outcome files from disk.
type LocalOutcomeSource struct{}

// NewLocalOutcomeSource constructs a LocalOutcomeSource.
func NewLocalOutcomeSource() *LocalOutcomeSource {
	return &LocalOutcomeSource{}
}

// LoadFile implements OutcomeSource. JSON input is accepted as YAML.
func (s *LocalOutcomeSource) LoadFile(path m.Path) ([]m.Entry, error) {
	// #nosec G304 - input path is supplied by the user on the command line
	data, err := os.ReadFile(string(path))
	if err != nil {
		slog.Error("failed to read outcome file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to read outcome file: %w", err)
	}

	var entries []m.Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		slog.Error("failed to decode outcome file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to decode outcome file %s: %w", path, err)
	}

	slog.Debug("loaded outcome file", "path", path, "entries", len(entries))

	return entries, nil
}

// LocalOutcomeJournal stores entries in a JSON Lines journal.
type LocalOutcomeJournal struct{}

// NewLocalOutcomeJournal constructs a LocalOutcomeJournal.
func NewLocalOutcomeJournal() *LocalOutcomeJournal {
	return &LocalOutcomeJournal{}
}

// Append implements OutcomeJournal.
func (j *LocalOutcomeJournal) Append(path m.Path, entry m.Entry) (err error) {
	journal, err := pkg.OpenJournal[m.Entry](string(path))
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, journal.Close())
	}()

	return journal.Append(entry)
}

// Load implements OutcomeJournal.
func (j *LocalOutcomeJournal) Load(path m.Path) ([]m.Entry, error) {
	if _, err := os.Stat(string(path)); errors.Is(err, os.ErrNotExist) {
		slog.Debug("no outcome journal", "path", path)
		return nil, nil
	}

	journal, err := pkg.OpenJournal[m.Entry](string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = journal.Close()
	}()

	entries := make([]m.Entry, 0, journal.Len())

	err = journal.Range(func(_ uint64, entry m.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read journal %s: %w", path, err)
	}

	return entries, nil
}

// Reset implements OutcomeJournal.
func (j *LocalOutcomeJournal) Reset(path m.Path) (err error) {
	journal, err := pkg.OpenJournal[m.Entry](string(path))
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, journal.Close())
	}()

	return journal.Truncate()
}
