package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

// FileStore keeps one JSON document per session under a records directory.
type FileStore struct {
	root string
	log  *logger.Logger
}

func NewFileStore(root string, baseLog *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create records dir %s: %v", ErrStorage, root, err)
	}
	var storeLog *logger.Logger
	if baseLog != nil {
		storeLog = baseLog.With("store", "FileStore")
	}
	return &FileStore{root: root, log: storeLog}, nil
}

func (s *FileStore) Create(ctx context.Context, record *types.SessionRecord) error {
	path, err := s.path(record.ID)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: session %s already exists", ErrStorage, record.ID)
	}
	return s.write(path, record)
}

func (s *FileStore) Load(_ context.Context, id string) (*types.SessionRecord, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, id, err)
	}
	var record types.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &record, nil
}

func (s *FileStore) Save(ctx context.Context, record *types.SessionRecord) error {
	path, err := s.path(record.ID)
	if err != nil {
		return err
	}
	return s.write(path, record)
}

// write serializes the record to a temp file in the records directory and
// renames it over the destination, so a concurrent Load never sees a torn
// document.
func (s *FileStore) write(path string, record *types.SessionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStorage, record.ID, err)
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStorage, record.ID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorage, record.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorage, record.ID, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorage, record.ID, err)
	}
	return nil
}

// path maps a session id to its file, rejecting ids that would escape the
// records directory.
func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return filepath.Join(s.root, id+".json"), nil
}

var _ Store = (*FileStore)(nil)
