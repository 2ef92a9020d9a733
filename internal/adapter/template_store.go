// Package adapter contains filesystem adapters for loading templates, reading
// recorded outcomes and writing reports.
package adapter

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	m "confreport.dev/pkg/confreport/internal/model"
)

// ErrTemplateUnavailable is returned when a report template cannot be read.
var ErrTemplateUnavailable = errors.New("report template unavailable")

//go:embed templates/*.html
var defaultTemplates embed.FS

// TemplateStore loads report templates by file name.
type TemplateStore interface {
	// Load returns the full contents of the template name inside dir.
	Load(dir m.Path, name string) (string, error)
}

// LocalTemplateStore reads templates from disk.
type LocalTemplateStore struct{}

// NewLocalTemplateStore constructs a LocalTemplateStore.
func NewLocalTemplateStore() *LocalTemplateStore {
	return &LocalTemplateStore{}
}

// Load reads dir/name. Any read failure wraps ErrTemplateUnavailable.
func (s *LocalTemplateStore) Load(dir m.Path, name string) (string, error) {
	path := filepath.Join(string(dir), name)

	// #nosec G304 - template path comes from configuration
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read template", "path", path, "error", err)
		return "", fmt.Errorf("%w: %s: %w", ErrTemplateUnavailable, path, err)
	}

	slog.Debug("loaded template", "path", path, "bytes", len(content))

	return string(content), nil
}

// FallbackTemplateStore serves the templates built into the binary when the
// wrapped store cannot provide one.
type FallbackTemplateStore struct {
	primary  TemplateStore
	fallback fs.FS
}

// NewFallbackTemplateStore wraps primary with the built-in templates.
func NewFallbackTemplateStore(primary TemplateStore) *FallbackTemplateStore {
	return &FallbackTemplateStore{primary: primary, fallback: builtinTemplates()}
}

func builtinTemplates() fs.FS {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}

	return sub
}

// ExportBuiltinTemplates copies the built-in templates into dir, creating it
// when missing. Files already present are left untouched and not returned.
func ExportBuiltinTemplates(dir m.Path) ([]m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("failed to create templates directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create templates directory: %w", err)
	}

	builtin := builtinTemplates()

	entries, err := fs.ReadDir(builtin, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in templates: %w", err)
	}

	written := make([]m.Path, 0, len(entries))

	for _, e := range entries {
		target := filepath.Join(string(dir), e.Name())

		ok, err := exportTemplate(builtin, e.Name(), target)
		if err != nil {
			return written, err
		}

		if ok {
			written = append(written, m.Path(target))
		}
	}

	return written, nil
}

func exportTemplate(builtin fs.FS, name, target string) (_ bool, err error) {
	content, err := fs.ReadFile(builtin, name)
	if err != nil {
		return false, fmt.Errorf("failed to read built-in template %s: %w", name, err)
	}

	// #nosec G304 - target is built from the configured templates directory
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		slog.Debug("keeping existing template", "path", target)
		return false, nil
	}

	if err != nil {
		slog.Error("failed to create template", "path", target, "error", err)
		return false, fmt.Errorf("failed to create template: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close template: %w", closeErr)
		}
	}()

	if _, err := file.Write(content); err != nil {
		slog.Error("failed to write template", "path", target, "error", err)
		return false, fmt.Errorf("failed to write template: %w", err)
	}

	return true, nil
}

// Load tries the primary store first.
func (s *FallbackTemplateStore) Load(dir m.Path, name string) (string, error) {
	content, err := s.primary.Load(dir, name)
	if err == nil {
		return content, nil
	}

	if !errors.Is(err, ErrTemplateUnavailable) {
		return "", err
	}

	builtin, fbErr := fs.ReadFile(s.fallback, name)
	if fbErr != nil {
		return "", err
	}

	slog.Warn("using built-in template", "name", name, "cause", err)

	return string(builtin), nil
}
