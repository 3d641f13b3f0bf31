// Package knowledgedir provides a document store backed by a flat
// directory of uploaded files.
package knowledgedir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/formpilot/formpilot/internal/core/domain"
	"github.com/formpilot/formpilot/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore stores knowledge base documents as plain files in a
// single directory. File names are the document names; nested paths are
// never created.
type DocumentStore struct {
	dir string
}

// NewDocumentStore creates a document store rooted at dir. If dir is
// empty it defaults to ~/.formpilot/knowledge.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".formpilot", "knowledge")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create knowledge directory: %w", err)
	}

	return &DocumentStore{dir: dir}, nil
}

// Dir returns the knowledge directory path.
func (s *DocumentStore) Dir() string {
	return s.dir
}

// Save stores a document's raw bytes under its name.
func (s *DocumentStore) Save(_ context.Context, name string, content []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return fmt.Errorf("write document %q: %w", name, err)
	}
	return nil
}

// Read returns the raw bytes of a document.
func (s *DocumentStore) Read(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: document %q", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("read document %q: %w", name, err)
	}
	return content, nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: document %q", domain.ErrNotFound, name)
		}
		return fmt.Errorf("delete document %q: %w", name, err)
	}
	return nil
}

// List returns metadata for all stored documents, sorted by name.
// Subdirectories and files with unsupported extensions are skipped.
func (s *DocumentStore) List(_ context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list knowledge directory: %w", err)
	}

	docs := make([]domain.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := domain.FormatFromName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, domain.Document{
			Name:    entry.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// validateName rejects names that would escape the knowledge directory.
func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid document name %q", domain.ErrInvalidInput, name)
	}
	return nil
}
