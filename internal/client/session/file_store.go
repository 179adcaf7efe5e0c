package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNoSnapshot is returned by a DurableStore whose copy is absent or does
// not parse. Callers treat both the same: fall through to the next copy.
var ErrNoSnapshot = errors.New("session: no stored snapshot")

// FileStore is the persistent local copy of the auth snapshot, a JSON file
// in the user's configuration directory.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStorePath places the snapshot under the OS config directory.
func DefaultFileStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hostelctl", "session.json"), nil
}

func (f *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, ErrNoSnapshot
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.ID == "" {
		return nil, ErrNoSnapshot
	}
	return &snap, nil
}

func (f *FileStore) Save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
