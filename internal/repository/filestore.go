package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
)

// FileStore persists the document as a single JSON file. Replace writes to a
// temporary file in the same directory and renames it over the target, so a
// crash mid-write never leaves a truncated document behind.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the stored document. A missing file reports absent; malformed
// content is logged and discarded, also reporting absent.
func (s *FileStore) Load(ctx context.Context) (domain.Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewDocument(), false, nil
		}
		return domain.NewDocument(), false, fmt.Errorf("read document file: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("discarding malformed document file",
			zap.String("path", s.path),
			zap.Error(err))
		return domain.NewDocument(), false, nil
	}
	if doc.Applications == nil {
		doc.Applications = []domain.Application{}
	}
	if doc.Tickets == nil {
		doc.Tickets = []domain.Ticket{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []domain.DutySession{}
	}
	return doc, true, nil
}

// Replace atomically overwrites the stored document.
func (s *FileStore) Replace(ctx context.Context, doc domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}
