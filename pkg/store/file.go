package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// FileStore keeps each record as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := errs.ValidatePath(baseDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the base directory for record files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	if err := errs.ValidateID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "marshal record")
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write record file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, errs.Wrap(errs.ErrCodeNotFound, err, "maze %q", id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.recordPath(id), id)
}

func (s *FileStore) read(path, id string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrCodeNotFound, "maze %q not found", id)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read record file")
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "parse record %s", id)
	}
	return &rec, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read store dir")
	}

	var out []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := s.read(filepath.Join(s.baseDir, entry.Name()), id)
		if err != nil {
			continue
		}
		rec.Data = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateID(id); err != nil {
		return errs.Wrap(errs.ErrCodeNotFound, err, "maze %q", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return errs.New(errs.ErrCodeNotFound, "maze %q not found", id)
		}
		return errs.Wrap(errs.ErrCodeInternal, err, "remove record file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
