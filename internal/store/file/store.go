package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/store"
)

// FileStore keeps each collection in its own JSON file inside one
// directory, mirroring the storage layout of the platform this
// replaces. All temp files are written before any rename, so a write
// error leaves the previous snapshot fully visible.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load() (*models.Snapshot, error) {
	snap := &models.Snapshot{}
	found := false
	for _, name := range store.CollectionKeys {
		data, err := os.ReadFile(s.path(name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		found = true
		if err := store.DecodeCollection(snap, name, data); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, nil
	}
	return snap, nil
}

func (s *FileStore) Persist(snap *models.Snapshot) error {
	values, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	tmp := make(map[string]string, len(values))
	for _, name := range store.CollectionKeys {
		f, err := os.CreateTemp(s.dir, name+".*.tmp")
		if err != nil {
			removeAll(tmp)
			return fmt.Errorf("failed to create temp file for %s: %w", name, err)
		}
		tmp[name] = f.Name()

		if _, err := f.Write(values[name]); err != nil {
			f.Close()
			removeAll(tmp)
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			removeAll(tmp)
			return fmt.Errorf("failed to finish writing %s: %w", name, err)
		}
	}

	for _, name := range store.CollectionKeys {
		if err := os.Rename(tmp[name], s.path(name)); err != nil {
			removeAll(tmp)
			return fmt.Errorf("failed to replace %s: %w", name, err)
		}
	}
	return nil
}

func removeAll(tmp map[string]string) {
	for _, path := range tmp {
		os.Remove(path)
	}
}
