// Package pkg provides utilities shared by the confreport commands.
package pkg

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Journal is an append-only log of items of type T stored as JSON Lines.
// It survives process restarts, so separate invocations can append to the
// same file and a later one can read everything back in order.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Truncate() error
	Close() error
}

// ErrJournalClosed is returned by writes to a closed journal.
var ErrJournalClosed = errors.New("journal is closed")

type journalImpl[T any] struct {
	path   string
	file   *os.File
	mu     sync.Mutex
	length uint64
}

// OpenJournal opens the journal at path, creating it and its parent
// directory when missing. Existing entries are kept.
func OpenJournal[T any](path string) (Journal[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		slog.Error("failed to create journal directory", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	// #nosec G304 - journal path comes from configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open journal", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	length, err := countLines(file)
	if err != nil {
		_ = file.Close()

		slog.Error("failed to scan journal", "path", path, "error", err)

		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}

	slog.Debug("opened journal", "path", path, "length", length)

	return &journalImpl[T]{
		path:   path,
		file:   file,
		length: length,
	}, nil
}

func countLines(r io.ReadSeeker) (uint64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	var count uint64

	err := eachLine(r, func(_ []byte) error {
		count++
		return nil
	})

	return count, err
}

// eachLine calls fn for every non-blank line of r. Lines may be of any length.
func eachLine(r io.Reader, fn func(line []byte) error) error {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if fnErr := fn(line); fnErr != nil {
				return fnErr
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrJournalClosed
	}

	data, err := json.Marshal(item)
	if err != nil {
		slog.Error("failed to encode item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	if _, err := j.file.Write(append(data, '\n')); err != nil {
		slog.Error("failed to append item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to append item: %w", err)
	}

	j.length++
	slog.Debug("appended item", "path", j.path, "index", j.length-1)

	return nil
}

// AppendBatch implements Journal.
func (j *journalImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string {
	return j.path
}

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Range implements Journal. Items are decoded in append order.
func (j *journalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	// #nosec G304 - journal path comes from configuration
	file, err := os.Open(j.path)
	if err != nil {
		slog.Error("failed to open journal for range", "path", j.path, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	var index uint64

	err = eachLine(file, func(line []byte) error {
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			slog.Error("failed to decode item during range", "path", j.path, "index", index, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", index, err)
		}

		if err := fn(index, item); err != nil {
			slog.Warn("range callback error", "path", j.path, "index", index, "error", err)
			return err
		}

		index++

		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("range completed", "path", j.path, "count", index)

	return nil
}

// Truncate implements Journal.
func (j *journalImpl[T]) Truncate() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrJournalClosed
	}

	if err := j.file.Truncate(0); err != nil {
		slog.Error("failed to truncate journal", "path", j.path, "error", err)
		return fmt.Errorf("failed to truncate journal: %w", err)
	}

	j.length = 0
	slog.Debug("truncated journal", "path", j.path)

	return nil
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		if err := j.file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
			return err
		}

		j.file = nil

		slog.Debug("closed journal", "path", j.path, "length", j.length)
	}

	return nil
}
