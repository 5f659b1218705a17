package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoRecord is returned by Load when nothing is stored under a key
var ErrNoRecord = errors.New("no persisted record")

// Persister is durable key/value storage for client state
type Persister interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Remove(key string) error
}

// FilePersister stores each key as <dir>/<key>.json, readable by the owner only
type FilePersister struct {
	dir string
}

// NewFilePersister ensures dir exists
func NewFilePersister(dir string) (*FilePersister, error) {
	if dir == "" {
		return nil, fmt.Errorf("session directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory %s: %w", dir, err)
	}
	return &FilePersister{dir: dir}, nil
}

// Path returns the file backing key
func (p *FilePersister) Path(key string) string {
	return filepath.Join(p.dir, key+".json")
}

// Load reads the record stored under key
func (p *FilePersister) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(p.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the record under key. The write goes through a temporary
// file so a crash never leaves a truncated record.
func (p *FilePersister) Save(key string, data []byte) error {
	tmp, err := os.CreateTemp(p.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, p.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Remove deletes the record under key; a missing record is not an error
func (p *FilePersister) Remove(key string) error {
	err := os.Remove(p.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// MemoryPersister keeps records in memory. Nothing survives the process.
type MemoryPersister struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{records: make(map[string][]byte)}
}

// Load implements Persister
func (m *MemoryPersister) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, ErrNoRecord
	}
	return append([]byte(nil), data...), nil
}

// Save implements Persister
func (m *MemoryPersister) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), data...)
	return nil
}

// Remove implements Persister
func (m *MemoryPersister) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
