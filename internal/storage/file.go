package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileMedium keeps every key in a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type FileMedium struct {
	path string
	mu   sync.Mutex
}

func NewFileMedium(path string) *FileMedium {
	if path == "" {
		path = filepath.Join(os.TempDir(), "nexus-settings.json")
	}
	return &FileMedium{path: path}
}

// Path returns the file backing the medium.
func (m *FileMedium) Path() string {
	return m.path
}

func (m *FileMedium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.readLocked()
	if err != nil {
		return "", false, err
	}
	value, ok := rows[key]
	return value, ok, nil
}

func (m *FileMedium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.readLocked()
	if err != nil {
		return err
	}
	rows[key] = value
	return m.writeLocked(rows)
}

func (m *FileMedium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, err := m.readLocked()
	if err != nil {
		return err
	}
	if _, ok := rows[key]; !ok {
		return nil
	}
	delete(rows, key)
	return m.writeLocked(rows)
}

func (m *FileMedium) readLocked() (map[string]string, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}
	rows := map[string]string{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *FileMedium) writeLocked(rows map[string]string) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(dir, ".nexus-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
